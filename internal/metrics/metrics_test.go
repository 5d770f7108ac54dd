package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("nbacdn", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("nbacdn", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("nbacdn"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("nbacdn"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	snap := rec.Snapshot("nbacdn")
	if snap.LastCallLatency != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", snap.LastCallLatency)
	}
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if empty := rec.Snapshot("unknown"); empty != (Snapshot{}) {
		t.Fatalf("expected empty snapshot for unknown provider, got %+v", empty)
	}
}

func TestRecorderTracksBuilds(t *testing.T) {
	rec := NewRecorder()
	rec.RecordBuild(BuildOK, time.Millisecond)
	rec.RecordBuild(BuildOK, time.Millisecond)
	rec.RecordBuild(BuildFallback, time.Millisecond)

	if got := rec.Builds(BuildOK); got != 2 {
		t.Fatalf("expected 2 ok builds, got %d", got)
	}
	if got := rec.Builds(BuildFallback); got != 1 {
		t.Fatalf("expected 1 fallback build, got %d", got)
	}
	if got := rec.Builds(BuildInvalid); got != 0 {
		t.Fatalf("expected 0 invalid builds, got %d", got)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("p", time.Millisecond, nil)
	rec.RecordBuild(BuildOK, time.Millisecond)
	rec.RecordHTTPRequest("GET", "/view", 200, time.Millisecond)
	rec.RecordView(ViewShape{Available: true})
	if _, ok := rec.ViewShape(); ok {
		t.Fatalf("expected nil recorder to hold no view shape")
	}
	if rec.ProviderCalls("p") != 0 || rec.Builds(BuildOK) != 0 {
		t.Fatalf("expected nil recorder to report zero")
	}
}

func TestRecorderKeepsLatestViewShape(t *testing.T) {
	rec := NewRecorder()
	if _, ok := rec.ViewShape(); ok {
		t.Fatalf("expected no shape before the first build")
	}

	rec.RecordView(ViewShape{Available: true, Today: 2, Last: 3, Next: 3})
	rec.RecordView(ViewShape{})

	shape, ok := rec.ViewShape()
	if !ok || shape != (ViewShape{}) {
		t.Fatalf("expected latest shape to win, got %+v", shape)
	}
}
