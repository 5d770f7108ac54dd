package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-tonight/internal/broadcast"
	"github.com/preston-bernstein/nba-tonight/internal/config"
	"github.com/preston-bernstein/nba-tonight/internal/domain/schedule"
	"github.com/preston-bernstein/nba-tonight/internal/logging"
	"github.com/preston-bernstein/nba-tonight/internal/metrics"
	"github.com/preston-bernstein/nba-tonight/internal/providers"
	"github.com/preston-bernstein/nba-tonight/internal/teamgames"
	"github.com/preston-bernstein/nba-tonight/internal/timeutil"
)

// Config wires a Builder.
type Config struct {
	Provider     providers.ScheduleProvider
	ProviderName string
	URL          string
	TeamID       int64
	WindowSize   int
	Policy       broadcast.Policy
	Normalizer   timeutil.Normalizer
	Teams        config.TeamTable
	Logger       *slog.Logger
	Metrics      *metrics.Recorder

	// TalkingPointsPath is read on every build; empty disables talking points.
	TalkingPointsPath string
}

// Builder runs the full pipeline: one fetch, then pure computation over the
// snapshot. Builders hold no per-build state and may be shared.
type Builder struct {
	cfg Config
	now func() time.Time
}

// NewBuilder constructs a Builder.
func NewBuilder(cfg Config) *Builder {
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = teamgames.DefaultWindowSize
	}
	if cfg.ProviderName == "" {
		cfg.ProviderName = "provider"
	}
	return &Builder{cfg: cfg, now: time.Now}
}

// Build produces the view for the current day. A failed fetch yields the
// fallback view and a nil error. Feed data that breaks the schedule contract
// also yields the fallback view, together with the error so it is not lost.
func (b *Builder) Build(ctx context.Context) (View, error) {
	start := time.Now()
	now := b.now()
	logger := logging.FromContext(ctx, b.cfg.Logger)
	dateKey := b.cfg.Normalizer.DateKey(now)

	res := providers.Fetch(ctx, b.cfg.Provider, b.cfg.URL, b.cfg.ProviderName, logger, b.cfg.Metrics)
	if !res.OK() {
		if errors.Is(res.Err, schedule.ErrContractViolation) {
			return b.invalid(logger, now, start, res.Err)
		}
		logging.Warn(logger, "serving fallback view",
			slog.String(logging.FieldDate, dateKey),
			slog.String("error", res.Err.Error()),
		)
		b.cfg.Metrics.RecordBuild(metrics.BuildFallback, time.Since(start))
		b.cfg.Metrics.RecordView(metrics.ViewShape{})
		v := Fallback(b.cfg.Normalizer, now, b.cfg.TeamID)
		v.TalkingPoint = b.talkingPoint(logger)
		return v, nil
	}

	today := TodayGames(res.Schedule, dateKey, b.cfg.Policy)

	c, err := teamgames.Classify(res.Schedule, b.cfg.TeamID, now)
	if err != nil {
		return b.invalid(logger, now, start, err)
	}
	windows := teamgames.SelectWindows(c, b.cfg.WindowSize)

	v := Assemble(Input{
		Now:        now,
		TeamID:     b.cfg.TeamID,
		Normalizer: b.cfg.Normalizer,
		Teams:      b.cfg.Teams,
		Today:      today,
		Windows:    windows,
		Record:     c.Record,
	})
	v.TalkingPoint = b.talkingPoint(logger)

	todayCount, lastCount, nextCount := v.Summary()
	logging.Info(logger, "view built",
		slog.String(logging.FieldDate, dateKey),
		slog.Int64(logging.FieldTeamID, b.cfg.TeamID),
		slog.Int("today", todayCount),
		slog.Int("past", len(c.Completed)),
		slog.Int("upcoming", len(c.Upcoming)),
		slog.Int("last", lastCount),
		slog.Int("next", nextCount),
		slog.String(logging.FieldRecord, c.Record.String()),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	b.cfg.Metrics.RecordBuild(metrics.BuildOK, time.Since(start))
	b.cfg.Metrics.RecordView(metrics.ViewShape{Available: true, Today: todayCount, Last: lastCount, Next: nextCount})
	return v, nil
}

func (b *Builder) invalid(logger *slog.Logger, now, start time.Time, err error) (View, error) {
	logging.Error(logger, "schedule contract violated", err,
		slog.Int64(logging.FieldTeamID, b.cfg.TeamID),
	)
	b.cfg.Metrics.RecordBuild(metrics.BuildInvalid, time.Since(start))
	b.cfg.Metrics.RecordView(metrics.ViewShape{})
	v := Fallback(b.cfg.Normalizer, now, b.cfg.TeamID)
	v.TalkingPoint = b.talkingPoint(logger)
	return v, fmt.Errorf("view: build: %w", err)
}

// talkingPoint loads the optional note. A broken file is logged and skipped so
// it never takes the view down.
func (b *Builder) talkingPoint(logger *slog.Logger) *config.TalkingPoint {
	tp, err := config.LoadTalkingPoint(b.cfg.TalkingPointsPath)
	if err != nil {
		logging.Warn(logger, "ignoring talking points",
			slog.String("path", b.cfg.TalkingPointsPath),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return tp
}
