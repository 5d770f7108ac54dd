package server

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/preston-bernstein/nba-tonight/internal/poller"
)

type stubPoller struct {
	mu           sync.Mutex
	startCalls   int
	stopCalls    int
	refreshCalls int
	err          error
	status       poller.Status
}

func (p *stubPoller) Start(ctx context.Context) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startCalls++
}

func (p *stubPoller) Stop(ctx context.Context) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopCalls++
	return p.err
}

func (p *stubPoller) Refresh(ctx context.Context) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refreshCalls++
}

func (p *stubPoller) Status() poller.Status {
	return p.status
}

func (p *stubPoller) counts() (start, stop int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.startCalls, p.stopCalls
}

type stubRollover struct {
	mu         sync.Mutex
	startCalls int
	stopCalls  int
	startErr   error
}

func (r *stubRollover) Start(ctx context.Context) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startCalls++
	return r.startErr
}

func (r *stubRollover) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopCalls++
	return nil
}

type stubHTTPServer struct {
	mu            sync.Mutex
	addr          string
	handler       http.Handler
	shutdownCalls int
	listenErr     error
	shutdownErr   error
}

func (s *stubHTTPServer) ListenAndServe() error {
	return s.listenErr
}

func (s *stubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdownCalls++
	return s.shutdownErr
}

func (s *stubHTTPServer) Addr() string          { return s.addr }
func (s *stubHTTPServer) Handler() http.Handler { return s.handler }

func (s *stubHTTPServer) shutdowns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdownCalls
}

// blockingHTTPServer simulates a shutdown that waits on unblock.
type blockingHTTPServer struct {
	addr          string
	handler       http.Handler
	shutdownCalls int
	unblock       chan struct{}
}

func (s *blockingHTTPServer) ListenAndServe() error { return nil }

func (s *blockingHTTPServer) Shutdown(ctx context.Context) error {
	s.shutdownCalls++
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.unblock:
		return nil
	}
}

func (s *blockingHTTPServer) Addr() string          { return s.addr }
func (s *blockingHTTPServer) Handler() http.Handler { return s.handler }

var errListen = errors.New("listen failure")
