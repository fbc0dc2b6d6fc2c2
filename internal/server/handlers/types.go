package handlers

import (
	"github.com/vzahanych/skyfetch/internal/forecast"
	"github.com/vzahanych/skyfetch/internal/owm"
	"github.com/vzahanych/skyfetch/internal/server/utils"
)

// WeatherRequest is the query of both the page search and the JSON API.
type WeatherRequest struct {
	City string `form:"city" json:"city" validate:"required,max=100,city"`
}

// WeatherResponse is the JSON form of a successful search.
type WeatherResponse struct {
	Current  owm.CurrentWeather     `json:"current"`
	Forecast []forecast.DailySample `json:"forecast"`
}

type ErrorResponse struct {
	Error   string                  `json:"error"`
	Code    string                  `json:"code,omitempty"`
	Details []utils.ValidationError `json:"details,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp,omitempty"`
}
