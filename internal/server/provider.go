package server

import (
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-tonight/internal/config"
	"github.com/preston-bernstein/nba-tonight/internal/providers"
	"github.com/preston-bernstein/nba-tonight/internal/providers/fixture"
	"github.com/preston-bernstein/nba-tonight/internal/providers/nbacdn"
)

// selectProvider picks the configured provider. today is the zone used to
// match today's bucket; the fixture keys its buckets in it.
func selectProvider(cfg config.Config, today *time.Location, logger *slog.Logger) providers.ScheduleProvider {
	switch cfg.Provider {
	case "nbacdn", "":
		return nbacdn.NewClient(nbacdn.Config{})
	case "fixture":
		return fixture.New(today)
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New(today)
	}
}
