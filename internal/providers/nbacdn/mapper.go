package nbacdn

import (
	"fmt"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-tonight/internal/domain/schedule"
)

func mapSchedule(resp scheduleResponse) (schedule.Schedule, error) {
	out := schedule.Schedule{
		Season: resp.LeagueSchedule.SeasonYear,
		Days:   make([]schedule.DayBucket, 0, len(resp.LeagueSchedule.GameDates)),
	}
	for _, d := range resp.LeagueSchedule.GameDates {
		bucket := schedule.DayBucket{
			Key:   strings.TrimSpace(d.GameDate),
			Games: make([]schedule.Game, 0, len(d.Games)),
		}
		for _, g := range d.Games {
			game, err := mapGame(g)
			if err != nil {
				return schedule.Schedule{}, err
			}
			bucket.Games = append(bucket.Games, game)
		}
		out.Days = append(out.Days, bucket)
	}
	return out, nil
}

// mapGame keeps the raw status code; deciding whether it is usable belongs to
// the classifier, which only cares about the target team's games.
func mapGame(g gameResp) (schedule.Game, error) {
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(g.GameDateTimeUTC))
	if err != nil {
		return schedule.Game{}, fmt.Errorf("%s: game %s: bad start time %q: %w", providerName, g.GameID, g.GameDateTimeUTC, err)
	}
	return schedule.Game{
		ID:         g.GameID,
		StartTime:  start.UTC(),
		Status:     schedule.GameStatus(g.GameStatus),
		Home:       mapSide(g.HomeTeam),
		Away:       mapSide(g.AwayTeam),
		Broadcasts: mapBroadcasts(g.Broadcasters.NationalBroadcasters),
	}, nil
}

func mapSide(t teamResp) schedule.Side {
	return schedule.Side{
		Team: schedule.TeamRef{
			ID:      t.TeamID,
			City:    strings.TrimSpace(t.TeamCity),
			Name:    strings.TrimSpace(t.TeamName),
			Tricode: strings.TrimSpace(t.TeamTricode),
		},
		Score: t.Score,
	}
}

func mapBroadcasts(in []broadcasterResp) []schedule.Broadcast {
	if len(in) == 0 {
		return nil
	}
	out := make([]schedule.Broadcast, 0, len(in))
	for _, b := range in {
		display := strings.TrimSpace(b.BroadcasterDisplay)
		if display == "" {
			continue
		}
		out = append(out, schedule.Broadcast{Display: display})
	}
	return out
}
