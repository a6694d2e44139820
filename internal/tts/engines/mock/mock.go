// Package mock provides a scriptable in-memory synthesizer for tests and for
// running the server without network access.
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dgnsrekt/edge-tts-mcp/internal/tts/engines"
)

// Engine is a fake synthesizer. The zero value succeeds instantly and returns
// deterministic marker audio; tests script failures and latencies per call.
type Engine struct {
	mu        sync.Mutex
	calls     int
	requests  []engines.Request
	failures  []error
	latencies []time.Duration
	latencyFn func(engines.Request) time.Duration
	voices    []engines.Voice
}

// New returns an Engine with a small built-in voice catalog.
func New() *Engine {
	return &Engine{
		voices: []engines.Voice{
			{ShortName: "en-US-GuyNeural", Gender: "Male", Locale: "en-US", FriendlyName: "Guy"},
			{ShortName: "en-US-AriaNeural", Gender: "Female", Locale: "en-US", FriendlyName: "Aria"},
			{ShortName: "ja-JP-NanamiNeural", Gender: "Female", Locale: "ja-JP", FriendlyName: "Nanami"},
		},
	}
}

// FailTimes scripts the next n calls to fail with err before any call that
// succeeds.
func (e *Engine) FailTimes(n int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := 0; i < n; i++ {
		e.failures = append(e.failures, err)
	}
}

// SetLatencies scripts per-call artificial latencies, consumed in call order.
// Calls beyond the scripted list return immediately.
func (e *Engine) SetLatencies(ds ...time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.latencies = append(e.latencies, ds...)
}

// SetLatencyFunc scripts per-request latency by request content, which stays
// deterministic under concurrent dispatch where call order does not.
func (e *Engine) SetLatencyFunc(fn func(engines.Request) time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.latencyFn = fn
}

// SetVoices replaces the built-in voice catalog.
func (e *Engine) SetVoices(voices []engines.Voice) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.voices = voices
}

// Calls returns how many Synthesize calls have been made.
func (e *Engine) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// Requests returns a copy of every request seen, in call order.
func (e *Engine) Requests() []engines.Request {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]engines.Request, len(e.requests))
	copy(out, e.requests)
	return out
}

// Synthesize implements engines.Synthesizer. Successful calls return a marker
// buffer of the form "audio[<voice>:<text>]" so tests can verify ordering and
// content without decoding real audio.
func (e *Engine) Synthesize(ctx context.Context, req engines.Request) ([]byte, error) {
	e.mu.Lock()
	e.calls++
	e.requests = append(e.requests, req)

	var delay time.Duration
	if e.latencyFn != nil {
		delay = e.latencyFn(req)
	} else if len(e.latencies) > 0 {
		delay = e.latencies[0]
		e.latencies = e.latencies[1:]
	}
	var fail error
	if len(e.failures) > 0 {
		fail = e.failures[0]
		e.failures = e.failures[1:]
	}
	e.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if fail != nil {
		return nil, fail
	}

	content := req.Text
	if content == "" {
		content = req.SSML
	}
	return []byte(fmt.Sprintf("audio[%s:%s]", req.Voice, content)), nil
}

// ListVoices implements engines.Synthesizer.
func (e *Engine) ListVoices(ctx context.Context) ([]engines.Voice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]engines.Voice, len(e.voices))
	copy(out, e.voices)
	return out, nil
}
