// Package render holds the presentation surfaces a search is rendered to.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"time"

	"github.com/vzahanych/skyfetch/internal/forecast"
	"github.com/vzahanych/skyfetch/internal/owm"
)

// PageTemplate is the template name for the SkyFetch page.
const PageTemplate = "page.html"

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(
	template.New(PageTemplate).Funcs(Funcs()).ParseFS(templateFS, "templates/*.html"),
)

// Templates returns the parsed page templates.
func Templates() *template.Template {
	return pageTemplates
}

// Funcs returns the helpers used by the templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"iconURL": IconURL,
		"round":   Round,
		"weekday": Weekday,
	}
}

// IconURL returns the OpenWeatherMap image for an icon code.
func IconURL(icon string) string {
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", icon)
}

// Round rounds a temperature to a whole degree.
func Round(v float64) int {
	return int(math.Round(v))
}

// Weekday returns the short weekday name of a sample's calendar day.
func Weekday(day string) string {
	t, err := time.Parse(time.DateOnly, day)
	if err != nil {
		return day
	}
	return t.Format("Mon")
}

// Page is the view model of the SkyFetch page. Render calls mutate it the way
// the page sections change in the browser; the final state is then written
// out once.
type Page struct {
	Query    string
	Welcome  bool
	Loading  bool
	Current  *owm.CurrentWeather
	Forecast []forecast.DailySample
	Error    string
}

func NewPage(query string) *Page {
	return &Page{Query: query}
}

func (p *Page) RenderWelcome() {
	p.Welcome = true
	p.Current = nil
	p.Forecast = nil
	p.Error = ""
}

func (p *Page) RenderLoading() {
	p.Welcome = false
	p.Current = nil
	p.Forecast = nil
	p.Error = ""
	p.Loading = true
}

func (p *Page) RenderCurrent(current owm.CurrentWeather) {
	p.Welcome = false
	p.Loading = false
	p.Error = ""
	p.Current = &current
}

func (p *Page) RenderForecast(days []forecast.DailySample) {
	p.Forecast = days
}

func (p *Page) RenderError(message string) {
	p.Welcome = false
	p.Loading = false
	p.Current = nil
	p.Forecast = nil
	p.Error = message
}

// Write executes the page template into w.
func (p *Page) Write(w io.Writer) error {
	return pageTemplates.ExecuteTemplate(w, PageTemplate, p)
}
