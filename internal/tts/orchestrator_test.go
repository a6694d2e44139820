package tts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/edge-tts-mcp/internal/tts/engines"
	"github.com/dgnsrekt/edge-tts-mcp/internal/tts/engines/mock"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Engine = "mock"
	cfg.OutputDir = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return cfg
}

func makeSegments(texts ...string) []Segment {
	segs := make([]Segment, len(texts))
	for i, txt := range texts {
		segs[i] = Segment{Index: i, Text: txt, Voice: "en-US-GuyNeural"}
	}
	return segs
}

func TestOrchestratorPreservesOrderUnderConcurrency(t *testing.T) {
	engine := mock.New()
	cfg := testConfig(t)
	cfg.MaxConcurrency = 4

	// Earlier segments take longer, so completion order inverts input order.
	delays := map[string]time.Duration{
		"seg-0": 60 * time.Millisecond,
		"seg-1": 40 * time.Millisecond,
		"seg-2": 20 * time.Millisecond,
		"seg-3": 0,
	}
	engine.SetLatencyFunc(func(req engines.Request) time.Duration {
		return delays[req.Text]
	})

	orch := NewOrchestrator(engine, cfg, testLogger())
	results := orch.Run(context.Background(), makeSegments("seg-0", "seg-1", "seg-2", "seg-3"))

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("segment %d failed: %v", i, r.Err)
		}
		want := fmt.Sprintf("audio[en-US-GuyNeural:seg-%d]", i)
		if string(r.Audio) != want {
			t.Errorf("result %d = %q, want %q", i, r.Audio, want)
		}
	}
}

func TestOrchestratorRetriesTransientOnce(t *testing.T) {
	engine := mock.New()
	engine.FailTimes(1, engines.NewTransient("en-US-GuyNeural", errors.New("socket closed")))

	cfg := testConfig(t)
	cfg.RetryAttempts = 1

	orch := NewOrchestrator(engine, cfg, testLogger())
	results := orch.Run(context.Background(), makeSegments("hello"))

	if results[0].Err != nil {
		t.Fatalf("expected success after retry, got %v", results[0].Err)
	}
	if results[0].Retries != 1 {
		t.Errorf("expected 1 retry, got %d", results[0].Retries)
	}
	if engine.Calls() != 2 {
		t.Errorf("expected 2 provider calls, got %d", engine.Calls())
	}
}

func TestOrchestratorDoesNotRetryPermanent(t *testing.T) {
	engine := mock.New()
	permanent := engines.NewPermanent("en-US-GuyNeural", errors.New("voice rejected"))
	engine.FailTimes(1, permanent)

	cfg := testConfig(t)
	cfg.RetryAttempts = 2

	orch := NewOrchestrator(engine, cfg, testLogger())
	results := orch.Run(context.Background(), makeSegments("hello"))

	if results[0].Err == nil {
		t.Fatal("expected a failure")
	}
	if engine.Calls() != 1 {
		t.Errorf("permanent failure retried: %d provider calls", engine.Calls())
	}
}

func TestOrchestratorIsolatesSegmentFailures(t *testing.T) {
	engine := mock.New()
	engine.FailTimes(1, engines.NewPermanent("en-US-GuyNeural", errors.New("boom")))

	cfg := testConfig(t)
	cfg.MaxConcurrency = 1
	cfg.RetryAttempts = 0
	cfg.FailureRatio = 1.0

	orch := NewOrchestrator(engine, cfg, testLogger())
	results := orch.Run(context.Background(), makeSegments("a", "b", "c"))

	if results[0].Err == nil {
		t.Error("expected segment 0 to fail")
	}
	for i := 1; i < 3; i++ {
		if results[i].Err != nil {
			t.Errorf("segment %d should have succeeded: %v", i, results[i].Err)
		}
	}
}

func TestOrchestratorAbortsPastFailureThreshold(t *testing.T) {
	engine := mock.New()
	boom := engines.NewPermanent("en-US-GuyNeural", errors.New("boom"))
	engine.FailTimes(2, boom)

	cfg := testConfig(t)
	cfg.MaxConcurrency = 1
	cfg.RetryAttempts = 0
	cfg.FailureRatio = 0.5

	orch := NewOrchestrator(engine, cfg, testLogger())
	results := orch.Run(context.Background(), makeSegments("a", "b", "c", "d"))

	if engine.Calls() != 2 {
		t.Errorf("expected dispatch to stop after 2 failures, got %d calls", engine.Calls())
	}
	for i := 2; i < 4; i++ {
		if !errors.Is(results[i].Err, ErrJobAborted) {
			t.Errorf("segment %d: expected ErrJobAborted, got %v", i, results[i].Err)
		}
	}
}

func TestOrchestratorStopsDispatchOnCancel(t *testing.T) {
	engine := mock.New()
	engine.SetLatencyFunc(func(engines.Request) time.Duration {
		return 30 * time.Millisecond
	})

	cfg := testConfig(t)
	cfg.MaxConcurrency = 1

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	orch := NewOrchestrator(engine, cfg, testLogger())
	results := orch.Run(ctx, makeSegments("a", "b", "c", "d"))

	// The in-flight segment drains to completion, later ones are cancelled.
	if results[0].Err != nil {
		t.Errorf("in-flight segment should complete: %v", results[0].Err)
	}
	if results[3].Err == nil {
		t.Error("expected trailing segment to be cancelled")
	}
	if !errors.Is(results[3].Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", results[3].Err)
	}
}

func TestOrchestratorEmptyInput(t *testing.T) {
	orch := NewOrchestrator(mock.New(), testConfig(t), testLogger())
	if results := orch.Run(context.Background(), nil); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
