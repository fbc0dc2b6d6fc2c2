package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/skyfetch/internal/owm"
)

func setupUpstream(t *testing.T) *atomic.Int32 {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Query().Get("q") != "New York" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.URL.Path {
		case "/weather":
			io.WriteString(w, `{"name":"New York","sys":{"country":"US"},"main":{"temp":20.2,"feels_like":19.6,"humidity":40,"pressure":1015},"weather":[{"description":"clear sky","icon":"01d"}],"wind":{"speed":2.5}}`)
		case "/forecast":
			io.WriteString(w, `{"city":{"name":"New York","timezone":0},"list":[{"dt":1772452800,"main":{"temp":18},"weather":[{"description":"clear sky","icon":"01d"}]}]}`)
		}
	}))
	t.Cleanup(srv.Close)

	chdirForTest(t, t.TempDir())
	t.Setenv("SKYFETCH_WEATHER_API_KEY", "test-key")
	t.Setenv("SKYFETCH_WEATHER_BASE_URL", srv.URL)
	t.Setenv("SKYFETCH_LOGGING_LEVEL", "error")
	return &calls
}

func runCLI(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	setupUpstream(t)

	out, err := runCLI("search", "New", "York")
	require.NoError(t, err)

	assert.Contains(t, out, "Loading...")
	assert.Contains(t, out, "New York, US")
	assert.Contains(t, out, "20°C  clear sky")
	assert.Contains(t, out, "Mon 2026-03-02")
}

func TestSearchCommand_NotFound(t *testing.T) {
	setupUpstream(t)

	out, err := runCLI("search", "Atlantis")

	assert.ErrorIs(t, err, owm.ErrLocationNotFound)
	assert.Contains(t, out, "Error: Location not found")
	assert.NotContains(t, out, "Feels like")
}

func TestSearchCommand_EmptyCity(t *testing.T) {
	calls := setupUpstream(t)

	out, err := runCLI("search", "  ")

	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, calls.Load())
}

func TestSearchCommand_MissingAPIKey(t *testing.T) {
	setupUpstream(t)
	t.Setenv("SKYFETCH_WEATHER_API_KEY", "")

	_, err := runCLI("search", "New York")
	assert.Error(t, err)
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
