package teststubs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/preston-bernstein/nba-tonight/internal/domain/schedule"
)

func TestStubProviderTracksCalls(t *testing.T) {
	err := errors.New("boom")
	p := &StubProvider{Schedule: schedule.Schedule{Season: "2024-25"}, Err: err, Notify: make(chan struct{})}
	if _, got := p.FetchSchedule(context.Background(), "http://feed"); !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	if p.Calls.Load() != 1 {
		t.Fatalf("expected call count 1, got %d", p.Calls.Load())
	}
	if p.LastURL != "http://feed" {
		t.Fatalf("expected url recorded, got %q", p.LastURL)
	}
	select {
	case <-p.Notify:
	default:
		t.Fatalf("expected notify channel closed after first fetch")
	}

	// A second call must not panic on the already closed channel.
	_, _ = p.FetchSchedule(context.Background(), "http://feed")
	if p.Calls.Load() != 2 {
		t.Fatalf("expected call count 2, got %d", p.Calls.Load())
	}
}

func TestNewBufferLogger(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello", "k", "v")
	if !strings.Contains(buf.String(), "k=v") {
		t.Fatalf("expected buffered output, got %q", buf.String())
	}
}
