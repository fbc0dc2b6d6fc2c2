package render

import (
	"fmt"
	"io"

	"github.com/vzahanych/skyfetch/internal/forecast"
	"github.com/vzahanych/skyfetch/internal/owm"
)

// Text renders a search to a terminal as plain lines.
type Text struct {
	w io.Writer
}

func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

func (t *Text) RenderWelcome() {
	fmt.Fprintln(t.w, "Welcome to SkyFetch Weather!")
	fmt.Fprintln(t.w, "Search for a city to get the current weather and 5-day forecast")
}

func (t *Text) RenderLoading() {
	fmt.Fprintln(t.w, "Loading...")
}

func (t *Text) RenderCurrent(c owm.CurrentWeather) {
	name := c.City
	if c.Country != "" {
		name = fmt.Sprintf("%s, %s", c.City, c.Country)
	}

	fmt.Fprintf(t.w, "\n%s\n", name)
	fmt.Fprintf(t.w, "  %d°C  %s\n", Round(c.Temperature), c.Description)
	fmt.Fprintf(t.w, "  Feels like: %d°C\n", Round(c.FeelsLike))
	fmt.Fprintf(t.w, "  Humidity:   %d%%\n", c.Humidity)
	fmt.Fprintf(t.w, "  Wind:       %g m/s\n", c.WindSpeed)
	fmt.Fprintf(t.w, "  Pressure:   %d hPa\n", c.Pressure)
}

func (t *Text) RenderForecast(days []forecast.DailySample) {
	if len(days) == 0 {
		return
	}

	fmt.Fprintln(t.w, "\nForecast")
	for _, d := range days {
		fmt.Fprintf(t.w, "  %s %s  %4d°C  %s\n", Weekday(d.Day), d.Day, Round(d.Temperature), d.Description)
	}
}

func (t *Text) RenderError(message string) {
	fmt.Fprintf(t.w, "Error: %s\n", message)
}
