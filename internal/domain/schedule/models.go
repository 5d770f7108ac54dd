package schedule

import (
	"errors"
	"time"
)

// ErrContractViolation marks feed data that breaks an assumption the classifier
// relies on (unknown status code, a final game without a winner).
var ErrContractViolation = errors.New("schedule contract violation")

// GameStatus mirrors the feed's numeric game lifecycle codes.
type GameStatus int

const (
	StatusScheduled  GameStatus = 1
	StatusInProgress GameStatus = 2
	StatusFinal      GameStatus = 3
)

// Valid reports whether the status is one of the known codes.
func (s GameStatus) Valid() bool {
	return s == StatusScheduled || s == StatusInProgress || s == StatusFinal
}

func (s GameStatus) String() string {
	switch s {
	case StatusScheduled:
		return "SCHEDULED"
	case StatusInProgress:
		return "IN_PROGRESS"
	case StatusFinal:
		return "FINAL"
	default:
		return "UNKNOWN"
	}
}

// TeamRef identifies a team inside a game. Identity is the numeric ID.
type TeamRef struct {
	ID      int64  `json:"id"`
	City    string `json:"city"`
	Name    string `json:"name"`
	Tricode string `json:"tricode,omitempty"`
}

// FullName joins city and name the way the league writes it ("New Orleans Pelicans").
func (t TeamRef) FullName() string {
	switch {
	case t.City == "":
		return t.Name
	case t.Name == "":
		return t.City
	default:
		return t.City + " " + t.Name
	}
}

// Side is one participant of a game with its score.
// Score is only meaningful once the game has left StatusScheduled.
type Side struct {
	Team  TeamRef `json:"team"`
	Score int     `json:"score"`
}

// Broadcast is a free-text national broadcaster label ("ABC", "ESPN/ABC").
type Broadcast struct {
	Display string `json:"display"`
}

// Game is one scheduled fixture.
type Game struct {
	ID         string      `json:"id"`
	StartTime  time.Time   `json:"startTime"`
	Status     GameStatus  `json:"status"`
	Home       Side        `json:"home"`
	Away       Side        `json:"away"`
	Broadcasts []Broadcast `json:"broadcasts,omitempty"`
}

// BroadcastNames returns the display names of the game's national broadcasts.
func (g Game) BroadcastNames() []string {
	if len(g.Broadcasts) == 0 {
		return nil
	}
	names := make([]string, 0, len(g.Broadcasts))
	for _, b := range g.Broadcasts {
		names = append(names, b.Display)
	}
	return names
}

// DayBucket groups the games the provider lists under one calendar date key.
type DayBucket struct {
	Key   string `json:"key"`
	Games []Game `json:"games"`
}

// Schedule is a full season snapshot from a single fetch.
// Buckets are not guaranteed to be sorted.
type Schedule struct {
	Season string      `json:"season,omitempty"`
	Days   []DayBucket `json:"days"`
}

// GameCount returns the number of games across all buckets.
func (s Schedule) GameCount() int {
	n := 0
	for _, d := range s.Days {
		n += len(d.Games)
	}
	return n
}
