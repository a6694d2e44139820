package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgnsrekt/edge-tts-mcp/internal/tts"
)

// RequestState tracks a detached job through its lifecycle.
type RequestState string

const (
	StateSubmitted  RequestState = "submitted"
	StateProcessing RequestState = "processing"
	StateCompleted  RequestState = "completed"
	StateFailed     RequestState = "failed"
)

// JobSnapshot is the caller-facing view of a tracked request.
type JobSnapshot struct {
	RequestID   string         `json:"request_id"`
	State       RequestState   `json:"state"`
	SubmittedAt time.Time      `json:"submitted_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Report      *tts.JobReport `json:"report,omitempty"`
	Error       string         `json:"error,omitempty"`
}

type jobEntry struct {
	snapshot JobSnapshot
}

// Registry tracks detached synthesis jobs so clients can poll for results.
// Finished entries expire after the TTL and are removed by a background
// sweep.
type Registry struct {
	mu   sync.Mutex
	jobs map[string]*jobEntry
	ttl  time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

// NewRegistry starts a Registry whose entries expire after ttl, swept every
// sweepInterval. Close releases the sweeper.
func NewRegistry(ttl, sweepInterval time.Duration) *Registry {
	r := &Registry{
		jobs: make(map[string]*jobEntry),
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	go r.sweep(sweepInterval)
	return r
}

// Submit registers a new request in the submitted state.
func (r *Registry) Submit(id string) {
	now := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[id] = &jobEntry{snapshot: JobSnapshot{
		RequestID:   id,
		State:       StateSubmitted,
		SubmittedAt: now,
		UpdatedAt:   now,
	}}
}

// Processing marks a request as running.
func (r *Registry) Processing(id string) {
	r.transition(id, func(s *JobSnapshot) {
		s.State = StateProcessing
	})
}

// Complete records the final report of a finished request.
func (r *Registry) Complete(id string, report tts.JobReport) {
	r.transition(id, func(s *JobSnapshot) {
		s.State = StateCompleted
		s.Report = &report
	})
}

// Fail records a request that produced no result.
func (r *Registry) Fail(id string, errMsg string) {
	r.transition(id, func(s *JobSnapshot) {
		s.State = StateFailed
		s.Error = errMsg
	})
}

func (r *Registry) transition(id string, update func(*JobSnapshot)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.jobs[id]
	if !ok {
		return
	}
	update(&entry.snapshot)
	entry.snapshot.UpdatedAt = time.Now()
}

// Get returns a copy of the tracked request, or ErrUnknownJob when the id was
// never submitted or has expired.
func (r *Registry) Get(id string) (JobSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.jobs[id]
	if !ok {
		return JobSnapshot{}, fmt.Errorf("%w: %s", tts.ErrUnknownJob, id)
	}
	return entry.snapshot, nil
}

// Len reports how many requests are currently tracked.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}

// Close stops the background sweeper.
func (r *Registry) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *Registry) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.expire(time.Now())
		}
	}
}

// expire drops finished entries older than the TTL. Running jobs are kept
// regardless of age so a slow synthesis cannot lose its result slot.
func (r *Registry) expire(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, entry := range r.jobs {
		s := entry.snapshot
		if s.State != StateCompleted && s.State != StateFailed {
			continue
		}
		if now.Sub(s.UpdatedAt) > r.ttl {
			delete(r.jobs, id)
		}
	}
}
