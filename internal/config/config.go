package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix is empty: variables are read unprefixed, e.g. PORT and TEAM_ID.
const envPrefix = ""

// Config holds runtime configuration for the server.
type Config struct {
	Port         string   `envconfig:"PORT" default:"4000"`
	PollInterval Duration `envconfig:"POLL_INTERVAL" default:"15m"`
	Provider     string   `envconfig:"PROVIDER" default:"nbacdn"`
	ScheduleURL  string   `envconfig:"SCHEDULE_URL" default:"https://cdn.nba.com/static/json/staticData/scheduleLeagueV2.json"`
	// AllowedOrigins lists origins allowed to fetch the view from a browser.
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	// AdminToken guards POST /admin/refresh; empty disables it.
	AdminToken string `envconfig:"ADMIN_TOKEN"`

	View    ViewConfig
	Metrics MetricsConfig
	Logging LoggingConfig
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
	File   string `envconfig:"LOG_FILE"`
}

// Load reads configuration from environment variables. Defaults live in the
// struct tags. Non-positive poll intervals and window sizes are passed through
// for the poller and the view builder to replace.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if err := cfg.View.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
