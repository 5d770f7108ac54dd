package teamgames

import (
	"slices"
	"strings"

	"github.com/preston-bernstein/nba-tonight/internal/domain/schedule"
)

// DefaultWindowSize is how many games each window holds when no size is configured.
const DefaultWindowSize = 3

// Windows holds the most recent completed games and the soonest upcoming ones.
type Windows struct {
	Last []schedule.Game
	Next []schedule.Game
}

// SelectWindows cuts both windows from a classification.
func SelectWindows(c Classification, k int) Windows {
	return Windows{
		Last: LastCompleted(c.Completed, k),
		Next: NextUpcoming(c.Upcoming, k),
	}
}

// LastCompleted returns up to k games, most recent first. The input is not reordered.
func LastCompleted(games []schedule.Game, k int) []schedule.Game {
	sorted := slices.Clone(games)
	slices.SortStableFunc(sorted, func(a, b schedule.Game) int {
		if c := b.StartTime.Compare(a.StartTime); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return head(sorted, k)
}

// NextUpcoming returns up to k games, soonest first. The input is not reordered.
func NextUpcoming(games []schedule.Game, k int) []schedule.Game {
	sorted := slices.Clone(games)
	slices.SortStableFunc(sorted, func(a, b schedule.Game) int {
		if c := a.StartTime.Compare(b.StartTime); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return head(sorted, k)
}

func head(games []schedule.Game, k int) []schedule.Game {
	if k <= 0 {
		k = DefaultWindowSize
	}
	if len(games) > k {
		games = games[:k]
	}
	if games == nil {
		return []schedule.Game{}
	}
	return games
}
