package teamgames

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/nba-tonight/internal/domain/schedule"
)

// Record is a team's cumulative wins and losses over completed games.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

func (r Record) String() string {
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// Games returns the number of completed games the record covers.
func (r Record) Games() int {
	return r.Wins + r.Losses
}

// Classification partitions one team's games.
type Classification struct {
	TeamID    int64
	Completed []schedule.Game
	Upcoming  []schedule.Game
	Record    Record
}

// Involves reports whether the team plays in the game, by ID only.
func Involves(g schedule.Game, teamID int64) bool {
	return g.Home.Team.ID == teamID || g.Away.Team.ID == teamID
}

// Perspective returns the team's side and the opponent's side of a game.
// ok is false when the team does not play in it.
func Perspective(g schedule.Game, teamID int64) (own, opponent schedule.Side, home, ok bool) {
	switch teamID {
	case g.Home.Team.ID:
		return g.Home, g.Away, true, true
	case g.Away.Team.ID:
		return g.Away, g.Home, false, true
	default:
		return schedule.Side{}, schedule.Side{}, false, false
	}
}

// Won reports whether the team won a final game. A tie is a contract
// violation since basketball games cannot end level.
func Won(g schedule.Game, teamID int64) (bool, error) {
	own, opp, _, ok := Perspective(g, teamID)
	if !ok {
		return false, fmt.Errorf("teamgames: team %d does not play in game %s", teamID, g.ID)
	}
	if own.Score == opp.Score {
		return false, fmt.Errorf("final game %s tied %d-%d: %w", g.ID, own.Score, opp.Score, schedule.ErrContractViolation)
	}
	return own.Score > opp.Score, nil
}

// Classify walks every bucket and splits the team's games into completed
// (final) and upcoming (scheduled strictly after now). In-progress games and
// scheduled games that already started are left out of both sets.
func Classify(s schedule.Schedule, teamID int64, now time.Time) (Classification, error) {
	c := Classification{TeamID: teamID}

	for _, day := range s.Days {
		for _, g := range day.Games {
			if !Involves(g, teamID) {
				continue
			}
			switch g.Status {
			case schedule.StatusFinal:
				won, err := Won(g, teamID)
				if err != nil {
					return Classification{}, err
				}
				if won {
					c.Record.Wins++
				} else {
					c.Record.Losses++
				}
				c.Completed = append(c.Completed, g)
			case schedule.StatusScheduled:
				if g.StartTime.After(now) {
					c.Upcoming = append(c.Upcoming, g)
				}
			case schedule.StatusInProgress:
			default:
				return Classification{}, fmt.Errorf("game %s has status code %d: %w", g.ID, int(g.Status), schedule.ErrContractViolation)
			}
		}
	}

	return c, nil
}
