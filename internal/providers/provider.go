package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-tonight/internal/domain/schedule"
	"github.com/preston-bernstein/nba-tonight/internal/metrics"
)

// ErrProviderUnavailable is returned when no provider is wired.
var ErrProviderUnavailable = errors.New("schedule provider unavailable")

// ScheduleProvider fetches and parses the league schedule feed at url.
// Implementations make one attempt; callers decide what a failure means.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, url string) (schedule.Schedule, error)
}

// Result is the outcome of one fetch: either a schedule or the reason there is none.
type Result struct {
	Schedule schedule.Schedule
	Err      error
	Duration time.Duration
}

// OK reports whether the fetch produced a schedule.
func (r Result) OK() bool {
	return r.Err == nil
}

// Fetch runs a single fetch and folds the outcome into a Result, recording
// the attempt when a recorder is provided.
func Fetch(ctx context.Context, p ScheduleProvider, url, name string, logger *slog.Logger, rec *metrics.Recorder) Result {
	start := time.Now()
	if p == nil {
		logWithProvider(ctx, logger, slog.LevelWarn, name, "provider unavailable")
		return Result{Err: ErrProviderUnavailable}
	}

	sched, err := p.FetchSchedule(ctx, url)
	res := Result{Schedule: sched, Err: err, Duration: time.Since(start)}
	rec.RecordProviderAttempt(name, res.Duration, err)

	if err != nil {
		logWithProvider(ctx, logger, slog.LevelWarn, name, "schedule fetch failed",
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", res.Duration.Milliseconds()),
		)
		return Result{Err: err, Duration: res.Duration}
	}
	logWithProvider(ctx, logger, slog.LevelInfo, name, "schedule fetched",
		slog.Int("count", sched.GameCount()),
		slog.Int("days", len(sched.Days)),
		slog.Int64("duration_ms", res.Duration.Milliseconds()),
	)
	return res
}
