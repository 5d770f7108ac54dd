package teststubs

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/nba-tonight/internal/domain/schedule"
)

// StubProvider is a test double for providers.ScheduleProvider.
type StubProvider struct {
	Schedule schedule.Schedule
	Err      error
	Calls    atomic.Int32
	Notify   chan struct{}

	mu      sync.Mutex
	LastURL string
}

// FetchSchedule returns the configured schedule and error while tracking calls.
func (s *StubProvider) FetchSchedule(ctx context.Context, url string) (schedule.Schedule, error) {
	_ = ctx
	s.mu.Lock()
	s.LastURL = url
	s.mu.Unlock()
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Schedule, s.Err
}

// NewBufferLogger returns a slog logger backed by a buffer and the buffer for assertions.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return logger, &buf
}
