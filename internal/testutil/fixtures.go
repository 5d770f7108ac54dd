package testutil

import (
	"time"

	"github.com/preston-bernstein/nba-tonight/internal/domain/schedule"
)

// Team references used across tests.
var (
	Pelicans = schedule.TeamRef{ID: 1610612740, City: "New Orleans", Name: "Pelicans", Tricode: "NOP"}
	Rockets  = schedule.TeamRef{ID: 1610612745, City: "Houston", Name: "Rockets", Tricode: "HOU"}
	Lakers   = schedule.TeamRef{ID: 1610612747, City: "Los Angeles", Name: "Lakers", Tricode: "LAL"}
	Celtics  = schedule.TeamRef{ID: 1610612738, City: "Boston", Name: "Celtics", Tricode: "BOS"}
	Clippers = schedule.TeamRef{ID: 1610612746, City: "LA", Name: "Clippers", Tricode: "LAC"}
)

// SampleGame returns a minimal scheduled game fixture with the provided id.
func SampleGame(id string) schedule.Game {
	return schedule.Game{
		ID:        id,
		StartTime: time.Date(2024, 10, 23, 0, 0, 0, 0, time.UTC),
		Status:    schedule.StatusScheduled,
		Home:      schedule.Side{Team: Pelicans},
		Away:      schedule.Side{Team: Rockets},
	}
}

// FinalGame builds a completed game with the given scores.
func FinalGame(id string, start time.Time, home, away schedule.TeamRef, homeScore, awayScore int) schedule.Game {
	return schedule.Game{
		ID:        id,
		StartTime: start,
		Status:    schedule.StatusFinal,
		Home:      schedule.Side{Team: home, Score: homeScore},
		Away:      schedule.Side{Team: away, Score: awayScore},
	}
}

// ScheduledGame builds a game that has not started, optionally with national broadcasters.
func ScheduledGame(id string, start time.Time, home, away schedule.TeamRef, networks ...string) schedule.Game {
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

// Day wraps games in a day bucket keyed the way the feed keys them.
func Day(key string, games ...schedule.Game) schedule.DayBucket {
	return schedule.DayBucket{Key: key + " 00:00:00", Games: games}
}

// SampleSchedule builds a schedule from day buckets.
func SampleSchedule(days ...schedule.DayBucket) schedule.Schedule {
	return schedule.Schedule{Season: "2024-25", Days: days}
}
