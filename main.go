package main

import (
	"os"

	"github.com/vzahanych/skyfetch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
