package nbacdn

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/preston-bernstein/nba-tonight/internal/domain/schedule"
)

func TestMapGameKeepsUnknownStatusRaw(t *testing.T) {
	g, err := mapGame(gameResp{GameID: "x", GameStatus: 9, GameDateTimeUTC: "2024-10-23T23:30:00Z"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if g.Status.Valid() {
		t.Fatalf("expected invalid status to pass through, got %s", g.Status)
	}
}

func TestMapGameRejectsBadStartTime(t *testing.T) {
	if _, err := mapGame(gameResp{GameID: "x", GameDateTimeUTC: "not a time"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMapGameNormalizesOffsetToUTC(t *testing.T) {
	g, err := mapGame(gameResp{GameID: "x", GameStatus: 1, GameDateTimeUTC: "2024-10-23T19:30:00-04:00"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if g.StartTime.Location().String() != "UTC" || g.StartTime.Hour() != 23 {
		t.Fatalf("expected utc start, got %s", g.StartTime)
	}
}

func TestMapSideTrimsFields(t *testing.T) {
	got := mapSide(teamResp{TeamID: 1610612740, TeamCity: " New Orleans ", TeamName: "Pelicans ", TeamTricode: "NOP", Score: 99})
	want := schedule.Side{
		Team:  schedule.TeamRef{ID: 1610612740, City: "New Orleans", Name: "Pelicans", Tricode: "NOP"},
		Score: 99,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("side mismatch (-want +got):\n%s", diff)
	}
}

func TestMapScheduleFailsWholeFeedOnBadGame(t *testing.T) {
	resp := scheduleResponse{LeagueSchedule: leagueSchedule{GameDates: []gameDateResp{
		{GameDate: "10/22/2024 00:00:00", Games: []gameResp{{GameID: "bad"}}},
	}}}
	if _, err := mapSchedule(resp); err == nil {
		t.Fatalf("expected error for unparsable game")
	}
}
