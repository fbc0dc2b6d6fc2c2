package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vzahanych/skyfetch/internal/app"
	"github.com/vzahanych/skyfetch/internal/config"
	"github.com/vzahanych/skyfetch/internal/owm"
	"github.com/vzahanych/skyfetch/internal/render"
)

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <city>",
		Short: "Show current weather and the 5-day forecast for a city",
		Example: `  skyfetch search London
  skyfetch search New York`,
		RunE: runSearch,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()

	client := owm.NewClient(cfg.Weather, log.Named("owm"), tele)
	searcher := app.NewSearcher(client, cfg.Forecast.Timezone, log.Named("search"))

	err := searcher.Search(cmd.Context(), strings.Join(args, " "), render.NewText(cmd.OutOrStdout()))
	if errors.Is(err, app.ErrEmptyCity) {
		return nil
	}
	return err
}
