package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/preston-bernstein/nba-tonight/internal/domain/schedule"
	"github.com/preston-bernstein/nba-tonight/internal/timeutil"
)

const providerName = "fixture"

var (
	pelicans = schedule.TeamRef{ID: 1610612740, City: "New Orleans", Name: "Pelicans", Tricode: "NOP"}
	rockets  = schedule.TeamRef{ID: 1610612745, City: "Houston", Name: "Rockets", Tricode: "HOU"}
	lakers   = schedule.TeamRef{ID: 1610612747, City: "Los Angeles", Name: "Lakers", Tricode: "LAL"}
	celtics  = schedule.TeamRef{ID: 1610612738, City: "Boston", Name: "Celtics", Tricode: "BOS"}
	warriors = schedule.TeamRef{ID: 1610612744, City: "Golden State", Name: "Warriors", Tricode: "GSW"}
	heat     = schedule.TeamRef{ID: 1610612748, City: "Miami", Name: "Heat", Tricode: "MIA"}
)

// Provider returns a schedule built around the current day, useful for local
// runs without reaching the CDN.
type Provider struct {
	now  func() time.Time
	zone *time.Location
}

// New creates a fixture provider whose day buckets follow zone, which should
// be the zone used to pick "today". A nil zone means UTC.
func New(zone *time.Location) *Provider {
	if zone == nil {
		zone = time.UTC
	}
	return &Provider{
		now:  time.Now,
		zone: zone,
	}
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string {
	return providerName
}

// FetchSchedule returns a deterministic schedule: three finished games for
// New Orleans, a slate of national games today and three upcoming games.
// The url is ignored.
func (p *Provider) FetchSchedule(ctx context.Context, url string) (schedule.Schedule, error) {
	_ = url
	if err := ctx.Err(); err != nil {
		return schedule.Schedule{}, err
	}

	now := p.now().In(p.zone)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.zone)
	at := func(dayOffset, hour, minute int) time.Time {
		return midnight.AddDate(0, 0, dayOffset).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute).UTC()
	}

	days := []schedule.DayBucket{
		p.day(midnight, -3,
			final("fixture-001", at(-3, 20, 0), pelicans, rockets, 116, 113),
		),
		p.day(midnight, -2,
			final("fixture-002", at(-2, 19, 30), celtics, pelicans, 122, 104),
		),
		p.day(midnight, -1,
			final("fixture-003", at(-1, 22, 0), lakers, pelicans, 101, 109),
		),
		p.day(midnight, 0,
			scheduled("fixture-010", at(0, 20, 0), lakers, celtics, "ABC"),
			scheduled("fixture-011", at(0, 22, 30), warriors, heat, "ESPN/ABC"),
			scheduled("fixture-012", at(0, 19, 0), rockets, pelicans, "NBA TV"),
			scheduled("fixture-013", at(0, 21, 0), heat, rockets, "Prime Video"),
		),
		p.day(midnight, 1,
			scheduled("fixture-020", at(1, 20, 0), pelicans, warriors),
		),
		p.day(midnight, 3,
			scheduled("fixture-021", at(3, 19, 30), heat, pelicans, "Peacock"),
		),
		p.day(midnight, 5,
			scheduled("fixture-022", at(5, 20, 0), pelicans, lakers),
		),
	}

	return schedule.Schedule{
		Season: season(now),
		Days:   days,
	}, nil
}

func (p *Provider) day(midnight time.Time, offset int, games ...schedule.Game) schedule.DayBucket {
	d := midnight.AddDate(0, 0, offset)
	return schedule.DayBucket{
		Key:   d.Format(timeutil.DateKeyLayout) + " 00:00:00",
		Games: games,
	}
}

func final(id string, start time.Time, home, away schedule.TeamRef, homeScore, awayScore int) schedule.Game {
	return schedule.Game{
		ID:        id,
		StartTime: start,
		Status:    schedule.StatusFinal,
		Home:      schedule.Side{Team: home, Score: homeScore},
		Away:      schedule.Side{Team: away, Score: awayScore},
	}
}

func scheduled(id string, start time.Time, home, away schedule.TeamRef, networks ...string) schedule.Game {
	g := schedule.Game{
		ID:        id,
		StartTime: start,
		Status:    schedule.StatusScheduled,
		Home:      schedule.Side{Team: home},
		Away:      schedule.Side{Team: away},
	}
	for _, n := range networks {
		g.Broadcasts = append(g.Broadcasts, schedule.Broadcast{Display: n})
	}
	return g
}

func season(now time.Time) string {
	start := now.Year()
	if now.Month() < time.July {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}
