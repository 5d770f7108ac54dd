package fixture

import (
	"context"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-tonight/internal/domain/schedule"
	"github.com/preston-bernstein/nba-tonight/internal/testutil"
	"github.com/preston-bernstein/nba-tonight/internal/timeutil"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	return loc
}

func countToday(sched schedule.Schedule, dateKey string) int {
	n := 0
	for _, d := range sched.Days {
		if timeutil.MatchesDateKey(d.Key, dateKey) {
			n += len(d.Games)
		}
	}
	return n
}

func TestFetchScheduleIsAnchoredToToday(t *testing.T) {
	fixed := time.Date(2024, 10, 22, 16, 0, 0, 0, time.UTC)
	p := New(newYork(t))
	p.now = testutil.NowAt(fixed)

	sched, err := p.FetchSchedule(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sched.Season != "2024-25" {
		t.Fatalf("unexpected season %s", sched.Season)
	}

	var today *schedule.DayBucket
	for i := range sched.Days {
		if sched.Days[i].Key == "10/22/2024 00:00:00" {
			today = &sched.Days[i]
		}
	}
	if today == nil {
		t.Fatalf("expected a bucket for today, got %+v", sched.Days)
	}
	if len(today.Games) != 4 {
		t.Fatalf("expected 4 games today, got %d", len(today.Games))
	}

	finals, upcoming := 0, 0
	for _, d := range sched.Days {
		for _, g := range d.Games {
			if g.Home.Team.ID != pelicans.ID && g.Away.Team.ID != pelicans.ID {
				continue
			}
			switch g.Status {
			case schedule.StatusFinal:
				finals++
				if g.Home.Score == g.Away.Score {
					t.Fatalf("fixture final %s must have a winner", g.ID)
				}
			case schedule.StatusScheduled:
				if g.StartTime.After(fixed) {
					upcoming++
				}
			}
		}
	}
	if finals != 3 {
		t.Fatalf("expected 3 finals, got %d", finals)
	}
	if upcoming < 3 {
		t.Fatalf("expected at least 3 upcoming games, got %d", upcoming)
	}
}

func TestFetchScheduleIsDeterministic(t *testing.T) {
	fixed := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	p := New(time.UTC)
	p.now = testutil.NowAt(fixed)

	a, _ := p.FetchSchedule(context.Background(), "")
	b, _ := p.FetchSchedule(context.Background(), "")
	if a.GameCount() != b.GameCount() || a.Days[0].Games[0].StartTime != b.Days[0].Games[0].StartTime {
		t.Fatalf("expected identical schedules")
	}
	if a.Season != "2024-25" {
		t.Fatalf("expected mid-season year to roll back, got %s", a.Season)
	}
}

func TestFetchScheduleHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(time.UTC).FetchSchedule(ctx, ""); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestNewCreatesProvider(t *testing.T) {
	p := New(nil)
	if p == nil || p.now == nil || p.zone != time.UTC {
		t.Fatalf("expected provider with clock and zone set")
	}
	if p.Name() != "fixture" {
		t.Fatalf("unexpected name %s", p.Name())
	}
}

func TestFetchScheduleFollowsTodayZoneLateEvening(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	tests := []struct {
		name string
		now  string
	}{
		{name: "midday", now: "2024-10-22T12:00:00-07:00"},
		{name: "late evening", now: "2024-10-22T22:00:00-07:00"},
		{name: "just before midnight", now: "2024-10-22T23:59:00-07:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := testutil.MustParseRFC3339(tt.now)
			p := New(la)
			p.now = testutil.NowAt(now)

			sched, err := p.FetchSchedule(context.Background(), "")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			key := timeutil.NewNormalizer(la).DateKey(now)
			if key != "10/22/2024" {
				t.Fatalf("unexpected date key %s", key)
			}
			if got := countToday(sched, key); got != 4 {
				t.Fatalf("expected 4 games in today's bucket, got %d", got)
			}
		})
	}
}
