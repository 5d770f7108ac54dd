package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

// BuildOutcome labels how a view build ended.
type BuildOutcome string

const (
	BuildOK       BuildOutcome = "ok"
	BuildFallback BuildOutcome = "fallback"
	BuildInvalid  BuildOutcome = "invalid"
)

// ViewShape summarizes a built view for gauges.
type ViewShape struct {
	Available bool
	Today     int
	Last      int
	Next      int
}

// Recorder captures lightweight, in-memory metrics about provider calls and
// view builds, mirrored to OpenTelemetry instruments when configured.
type Recorder struct {
	mu       sync.Mutex
	stats    map[string]*providerStats
	builds   map[BuildOutcome]int
	shape    ViewShape
	hasShape bool
	otel     *otelInstruments
}

func NewRecorder() *Recorder {
	return &Recorder{
		stats:  make(map[string]*providerStats),
		builds: make(map[BuildOutcome]int),
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordBuild counts a finished view build by outcome.
func (r *Recorder) RecordBuild(outcome BuildOutcome, duration time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.builds[outcome]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordBuild(outcome, duration)
	}
}

// RecordView stores the shape of the latest built view.
func (r *Recorder) RecordView(shape ViewShape) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shape = shape
	r.hasShape = true
}

// ViewShape returns the shape of the latest built view, if one was recorded.
func (r *Recorder) ViewShape() (ViewShape, bool) {
	if r == nil {
		return ViewShape{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shape, r.hasShape
}

// Builds returns how many builds ended with the given outcome.
func (r *Recorder) Builds(outcome BuildOutcome) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.builds[outcome]
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(provider)
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

func (r *Recorder) ensureStatsLocked(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

func (r *Recorder) snapshot(provider string) providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[provider]; ok && stats != nil {
		return *stats
	}
	return providerStats{}
}
