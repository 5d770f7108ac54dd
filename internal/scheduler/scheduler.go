package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/preston-bernstein/nba-tonight/internal/logging"
	"github.com/preston-bernstein/nba-tonight/internal/timeutil"
)

const jobName = "daily-rollover"

// Rollover rebuilds the view just after midnight in the "today" zone so the
// day's slate switches over without waiting for the next poll.
type Rollover struct {
	s       gocron.Scheduler
	loc     *time.Location
	refresh func(context.Context)
	logger  *slog.Logger
	ctx     context.Context
	now     func() time.Time
}

// New creates a Rollover whose clock runs in loc.
func New(loc *time.Location, refresh func(context.Context), logger *slog.Logger) (*Rollover, error) {
	if loc == nil {
		loc = time.UTC
	}
	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("scheduler: create: %w", err)
	}
	return &Rollover{
		s:       s,
		loc:     loc,
		refresh: refresh,
		logger:  logger,
		ctx:     context.Background(),
		now:     time.Now,
	}, nil
}

// Start registers the daily job and starts the scheduler. Builds triggered by
// the job use ctx.
func (r *Rollover) Start(ctx context.Context) error {
	if ctx != nil {
		r.ctx = ctx
	}
	_, err := r.s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 1, 0))),
		gocron.NewTask(r.rollover),
		gocron.WithName(jobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("scheduler: register %s job: %w", jobName, err)
	}
	r.s.Start()
	logging.Info(r.logger, "rollover scheduled", slog.String("zone", r.loc.String()))
	return nil
}

// Stop shuts the scheduler down and waits for running jobs.
func (r *Rollover) Stop() error {
	return r.s.Shutdown()
}

// Jobs returns the names of the registered jobs.
func (r *Rollover) Jobs() []string {
	jobs := r.s.Jobs()
	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		names = append(names, j.Name())
	}
	return names
}

func (r *Rollover) rollover() {
	if r.refresh == nil {
		return
	}
	logging.Info(r.logger, "day rolled over", slog.String(logging.FieldDate, r.now().In(r.loc).Format(timeutil.DateKeyLayout)))
	r.refresh(r.ctx)
}
