package config

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/nba-tonight/internal/timeutil"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// ViewConfig holds the knobs of the derived views.
type ViewConfig struct {
	TeamID           int64    `envconfig:"TEAM_ID" default:"1610612740"`
	WindowSize       int      `envconfig:"WINDOW_SIZE" default:"3"`
	WantedNetworks   []string `envconfig:"WANTED_NETWORKS" default:"ABC,NBC,PEACOCK,AMAZON,PRIME"`
	ExcludedNetworks []string `envconfig:"EXCLUDED_NETWORKS" default:"ESPN,NBA TV,NBATV"`
	TodayZone        string   `envconfig:"TODAY_TIMEZONE" default:"America/Los_Angeles"`
	DisplayZones     []string `envconfig:"DISPLAY_TIMEZONES" default:"America/Los_Angeles"`
	TeamTablePath    string   `envconfig:"TEAM_TABLE_PATH"`

	// TalkingPointsPath names an optional JSON or YAML note file, reread on every build.
	TalkingPointsPath string `envconfig:"TALKING_POINTS_PATH"`
}

// Normalizer resolves the configured zones into a timeutil.Normalizer.
func (v ViewConfig) Normalizer() (timeutil.Normalizer, error) {
	today, err := timeutil.ResolveZone(v.TodayZone)
	if err != nil {
		return timeutil.Normalizer{}, fmt.Errorf("config: today zone: %w", err)
	}
	display := make([]*time.Location, 0, len(v.DisplayZones))
	for _, name := range v.DisplayZones {
		loc, err := timeutil.ResolveZone(name)
		if err != nil {
			return timeutil.Normalizer{}, fmt.Errorf("config: display zone: %w", err)
		}
		display = append(display, loc)
	}
	return timeutil.NewNormalizer(today, display...), nil
}

func (v *ViewConfig) validate() error {
	if v.TeamID <= 0 {
		return fmt.Errorf("config: TEAM_ID must be positive, got %d", v.TeamID)
	}
	if len(v.DisplayZones) == 0 {
		v.DisplayZones = []string{v.TodayZone}
	}
	if _, err := v.Normalizer(); err != nil {
		return err
	}
	return nil
}
