package owm

import "github.com/vzahanych/skyfetch/internal/forecast"

// CurrentWeather is the current-conditions reading for a city.
type CurrentWeather struct {
	City           string  `json:"city"`
	Country        string  `json:"country,omitempty"`
	Timestamp      int64   `json:"dt"`
	TimezoneOffset int     `json:"timezone_offset"`
	Temperature    float64 `json:"temperature"`
	FeelsLike      float64 `json:"feels_like"`
	Humidity       int     `json:"humidity"`
	Pressure       int     `json:"pressure"`
	WindSpeed      float64 `json:"wind_speed"`
	Condition      string  `json:"condition"`
	Description    string  `json:"description"`
	Icon           string  `json:"icon"`
}

// Forecast is the multi-day forecast series for a city, ascending by time.
type Forecast struct {
	City           string           `json:"city"`
	Country        string           `json:"country,omitempty"`
	TimezoneOffset int              `json:"timezone_offset"`
	Entries        []forecast.Entry `json:"entries"`
}

// Result holds both halves of a successful search.
type Result struct {
	Current  CurrentWeather
	Forecast Forecast
}

type condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func firstCondition(items []condition) condition {
	if len(items) == 0 {
		return condition{}
	}
	return items[0]
}

type currentPayload struct {
	Name     string `json:"name"`
	Dt       int64  `json:"dt"`
	Timezone int    `json:"timezone"`
	Sys      struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Weather []condition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

func (p currentPayload) toCurrent() CurrentWeather {
	c := firstCondition(p.Weather)
	return CurrentWeather{
		City:           p.Name,
		Country:        p.Sys.Country,
		Timestamp:      p.Dt,
		TimezoneOffset: p.Timezone,
		Temperature:    p.Main.Temp,
		FeelsLike:      p.Main.FeelsLike,
		Humidity:       p.Main.Humidity,
		Pressure:       p.Main.Pressure,
		WindSpeed:      p.Wind.Speed,
		Condition:      c.Main,
		Description:    c.Description,
		Icon:           c.Icon,
	}
}

type forecastPayload struct {
	City struct {
		Name     string `json:"name"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []condition `json:"weather"`
	} `json:"list"`
}

func (p forecastPayload) toForecast() Forecast {
	entries := make([]forecast.Entry, 0, len(p.List))
	for _, item := range p.List {
		c := firstCondition(item.Weather)
		entries = append(entries, forecast.Entry{
			Timestamp:   item.Dt,
			Temperature: item.Main.Temp,
			Condition:   c.Main,
			Description: c.Description,
			Icon:        c.Icon,
		})
	}

	return Forecast{
		City:           p.City.Name,
		Country:        p.City.Country,
		TimezoneOffset: p.City.Timezone,
		Entries:        entries,
	}
}
