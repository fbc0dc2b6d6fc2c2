package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/skyfetch/internal/forecast"
	"github.com/vzahanych/skyfetch/internal/owm"
)

var (
	london = owm.CurrentWeather{
		City:        "London",
		Country:     "GB",
		Temperature: 11.6,
		FeelsLike:   10.4,
		Humidity:    81,
		Pressure:    1012,
		WindSpeed:   4.1,
		Description: "light rain",
		Icon:        "10d",
	}
	days = []forecast.DailySample{
		{Entry: forecast.Entry{Temperature: 9.5, Description: "overcast clouds", Icon: "04d"}, Day: "2026-03-02"},
		{Entry: forecast.Entry{Temperature: 7.4, Description: "snow", Icon: "13d"}, Day: "2026-03-03"},
	}
)

func TestHelpers(t *testing.T) {
	assert.Equal(t, "https://openweathermap.org/img/wn/10d@2x.png", IconURL("10d"))
	assert.Equal(t, 12, Round(11.6))
	assert.Equal(t, -3, Round(-2.6))
	assert.Equal(t, "Mon", Weekday("2026-03-02"))
	assert.Equal(t, "garbage", Weekday("garbage"))
}

func TestPage_StateTransitions(t *testing.T) {
	p := NewPage("London")

	p.RenderWelcome()
	assert.True(t, p.Welcome)

	p.RenderLoading()
	assert.True(t, p.Loading)
	assert.False(t, p.Welcome)

	p.RenderCurrent(london)
	p.RenderForecast(days)
	assert.False(t, p.Loading)
	require.NotNil(t, p.Current)
	assert.Len(t, p.Forecast, 2)

	p.RenderError("Location not found")
	assert.Nil(t, p.Current)
	assert.Nil(t, p.Forecast)
	assert.False(t, p.Loading)
	assert.Equal(t, "Location not found", p.Error)

	p.RenderLoading()
	assert.Empty(t, p.Error)
}

func TestPage_WriteResults(t *testing.T) {
	p := NewPage("London")
	p.RenderLoading()
	p.RenderCurrent(london)
	p.RenderForecast(days)

	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))
	html := buf.String()

	assert.Contains(t, html, `<h2 class="city-name">London</h2>`)
	assert.Contains(t, html, "12°C")
	assert.Contains(t, html, "Feels like: 10°C")
	assert.Contains(t, html, "Humidity: 81%")
	assert.Contains(t, html, "Wind: 4.1 m/s")
	assert.Contains(t, html, "Pressure: 1012 hPa")
	assert.Contains(t, html, "https://openweathermap.org/img/wn/10d@2x.png")
	assert.Equal(t, 2, strings.Count(html, `class="forecast-card"`))
	assert.Contains(t, html, `<p class="forecast-day">Tue</p>`)
	assert.Contains(t, html, `value="London"`)
	assert.NotContains(t, html, "Loading...")
	assert.NotContains(t, html, "welcome-message")
}

func TestPage_WriteWelcomeAndError(t *testing.T) {
	p := NewPage("")
	p.RenderWelcome()

	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))
	assert.Contains(t, buf.String(), "Welcome to SkyFetch Weather!")

	p.RenderLoading()
	p.RenderError("<b>Location not found</b>")
	buf.Reset()
	require.NoError(t, p.Write(&buf))
	assert.Contains(t, buf.String(), "&lt;b&gt;Location not found&lt;/b&gt;")
	assert.NotContains(t, buf.String(), "weather-card")
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf)

	r.RenderLoading()
	r.RenderCurrent(london)
	r.RenderForecast(days)

	out := buf.String()
	assert.Contains(t, out, "London, GB")
	assert.Contains(t, out, "12°C  light rain")
	assert.Contains(t, out, "Humidity:   81%")
	assert.Contains(t, out, "Mon 2026-03-02")
	assert.Contains(t, out, "Tue 2026-03-03")

	buf.Reset()
	r.RenderError("Location not found")
	assert.Equal(t, "Error: Location not found\n", buf.String())

	buf.Reset()
	r.RenderForecast(nil)
	assert.Empty(t, buf.String())
}
