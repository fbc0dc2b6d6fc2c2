package config

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var configValue atomic.Value

func GetConfig() *Config {
	cfg, _ := configValue.Load().(*Config)
	if cfg == nil {
		return NewDefaultConfig()
	}
	return cfg
}

func SetConfig(cfg *Config) {
	configValue.Store(cfg)
}

type Config struct {
	Version     string          `mapstructure:"version"`
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Weather     WeatherConfig   `mapstructure:"weather"`
	Forecast    ForecastConfig  `mapstructure:"forecast"`
	Logging     LoggingConfig   `mapstructure:"logging"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Host         string `mapstructure:"host"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// WeatherConfig describes the OpenWeatherMap upstream.
type WeatherConfig struct {
	BaseURL   string  `mapstructure:"base_url"`
	APIKey    string  `mapstructure:"api_key"`
	Timeout   int     `mapstructure:"timeout"`
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

// ForecastConfig controls how forecast entries are bucketed into days.
// Timezone is "city", "local" or an IANA zone name.
type ForecastConfig struct {
	Timezone string `mapstructure:"timezone"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Version:     "1.0.0",
		Environment: "development",
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
		},
		Weather: WeatherConfig{
			BaseURL:   "https://api.openweathermap.org/data/2.5",
			APIKey:    "",
			Timeout:   10,
			RateLimit: 0,
			RateBurst: 2,
		},
		Forecast: ForecastConfig{
			Timezone: "city",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			Endpoint:    "tempo:4317",
			ServiceName: "skyfetch",
		},
	}
}

var ErrMissingAPIKey = errors.New("weather.api_key is not configured")

// Validate checks the settings needed to talk to the upstream API.
func (c *Config) Validate() error {
	if c.Weather.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Weather.BaseURL == "" {
		return fmt.Errorf("weather.base_url must not be empty")
	}
	if c.Weather.Timeout < 0 {
		return fmt.Errorf("weather.timeout must not be negative, got %d", c.Weather.Timeout)
	}
	if c.Weather.RateLimit < 0 {
		return fmt.Errorf("weather.rate_limit must not be negative, got %v", c.Weather.RateLimit)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}
