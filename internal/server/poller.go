package server

import (
	"context"

	"github.com/preston-bernstein/nba-tonight/internal/poller"
)

// Poller defines the minimal poller behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Refresh(ctx context.Context)
	Status() poller.Status
}

// Rollover is the daily job that switches the view over to the new day.
type Rollover interface {
	Start(ctx context.Context) error
	Stop() error
}
