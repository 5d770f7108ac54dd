package providers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/preston-bernstein/nba-tonight/internal/domain/schedule"
	"github.com/preston-bernstein/nba-tonight/internal/metrics"
	"github.com/preston-bernstein/nba-tonight/internal/teststubs"
)

func TestFetchSuccessRecordsAttempt(t *testing.T) {
	stub := &teststubs.StubProvider{
		Schedule: schedule.Schedule{Days: []schedule.DayBucket{{Key: "10/22/2024 00:00:00", Games: []schedule.Game{{ID: "g1"}}}}},
	}
	rec := metrics.NewRecorder()
	logger, buf := teststubs.NewBufferLogger()

	res := Fetch(context.Background(), stub, "http://feed", "stub", logger, rec)
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if res.Schedule.GameCount() != 1 {
		t.Fatalf("expected 1 game, got %d", res.Schedule.GameCount())
	}
	if stub.LastURL != "http://feed" {
		t.Fatalf("expected url passed through, got %q", stub.LastURL)
	}
	if got := rec.ProviderCalls("stub"); got != 1 {
		t.Fatalf("expected 1 recorded call, got %d", got)
	}
	if !strings.Contains(buf.String(), "provider=stub") {
		t.Fatalf("expected provider field in logs, got %q", buf.String())
	}
}

func TestFetchFailureDropsPartialSchedule(t *testing.T) {
	boom := errors.New("boom")
	stub := &teststubs.StubProvider{
		Schedule: schedule.Schedule{Days: []schedule.DayBucket{{Key: "partial"}}},
		Err:      boom,
	}
	rec := metrics.NewRecorder()

	res := Fetch(context.Background(), stub, "http://feed", "stub", nil, rec)
	if res.OK() || !errors.Is(res.Err, boom) {
		t.Fatalf("expected boom error, got %v", res.Err)
	}
	if len(res.Schedule.Days) != 0 {
		t.Fatalf("expected no partial schedule on failure, got %+v", res.Schedule)
	}
	if got := rec.ProviderErrors("stub"); got != 1 {
		t.Fatalf("expected 1 recorded error, got %d", got)
	}
}

func TestFetchNilProvider(t *testing.T) {
	res := Fetch(context.Background(), nil, "http://feed", "none", nil, nil)
	if !errors.Is(res.Err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", res.Err)
	}
}

func TestScheduleProviderInterfaceImplemented(t *testing.T) {
	var _ ScheduleProvider = (*teststubs.StubProvider)(nil)
}
