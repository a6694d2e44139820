package server

import (
	"errors"
	"testing"
	"time"

	"github.com/dgnsrekt/edge-tts-mcp/internal/tts"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry(time.Hour, time.Hour)
	t.Cleanup(r.Close)
	return r
}

func TestRegistryLifecycle(t *testing.T) {
	r := newTestRegistry(t)

	r.Submit("req_1")
	snap, err := r.Get("req_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.State != StateSubmitted {
		t.Errorf("state = %s, want %s", snap.State, StateSubmitted)
	}

	r.Processing("req_1")
	if snap, _ = r.Get("req_1"); snap.State != StateProcessing {
		t.Errorf("state = %s, want %s", snap.State, StateProcessing)
	}

	report := tts.JobReport{RequestID: "req_1", Status: tts.StatusSuccess}
	r.Complete("req_1", report)
	snap, _ = r.Get("req_1")
	if snap.State != StateCompleted {
		t.Errorf("state = %s, want %s", snap.State, StateCompleted)
	}
	if snap.Report == nil || snap.Report.Status != tts.StatusSuccess {
		t.Errorf("report not recorded: %+v", snap.Report)
	}
}

func TestRegistryFail(t *testing.T) {
	r := newTestRegistry(t)

	r.Submit("req_2")
	r.Fail("req_2", "provider unreachable")

	snap, err := r.Get("req_2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.State != StateFailed || snap.Error != "provider unreachable" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestRegistryUnknownID(t *testing.T) {
	r := newTestRegistry(t)

	if _, err := r.Get("req_missing"); !errors.Is(err, tts.ErrUnknownJob) {
		t.Errorf("expected ErrUnknownJob, got %v", err)
	}
}

func TestRegistryExpireKeepsRunningJobs(t *testing.T) {
	r := newTestRegistry(t)

	r.Submit("running")
	r.Processing("running")

	r.Submit("done")
	r.Complete("done", tts.JobReport{})

	// Both entries are now older than the TTL from this clock's view.
	r.expire(time.Now().Add(2 * time.Hour))

	if _, err := r.Get("running"); err != nil {
		t.Errorf("running job expired: %v", err)
	}
	if _, err := r.Get("done"); !errors.Is(err, tts.ErrUnknownJob) {
		t.Errorf("finished job not expired, got %v", err)
	}
}

func TestRegistryCloseIsIdempotent(t *testing.T) {
	r := NewRegistry(time.Hour, time.Millisecond)
	r.Close()
	r.Close()
}
