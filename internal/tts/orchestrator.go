package tts

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/edge-tts-mcp/internal/tts/engines"
)

// Orchestrator fans segments out to the provider under a concurrency cap and
// reassembles the results in segment order.
type Orchestrator struct {
	engine       engines.Synthesizer
	concurrency  int
	retries      int
	failureRatio float64
	rate         string
	volume       string
	timeout      time.Duration
	logger       *log.Logger
}

// NewOrchestrator builds an Orchestrator from the service configuration.
func NewOrchestrator(engine engines.Synthesizer, cfg Config, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		engine:       engine,
		concurrency:  cfg.MaxConcurrency,
		retries:      cfg.RetryAttempts,
		failureRatio: cfg.FailureRatio,
		rate:         cfg.Rate,
		volume:       cfg.Volume,
		timeout:      cfg.SynthTimeout,
		logger:       logger,
	}
}

// withProsody returns a copy of the orchestrator using request-level rate and
// volume overrides.
func (o *Orchestrator) withProsody(rate, volume string) *Orchestrator {
	clone := *o
	clone.rate = rate
	clone.volume = volume
	return &clone
}

// Run synthesizes all segments and returns one result per segment, in input
// order. Individual segment failures do not stop the job; once failures exceed
// the configured ratio of the total, the remaining undispatched segments are
// abandoned with ErrJobAborted. Cancelling ctx stops dispatch while letting
// in-flight segments drain.
func (o *Orchestrator) Run(ctx context.Context, segments []Segment) []SegmentResult {
	results := make([]SegmentResult, len(segments))
	if len(segments) == 0 {
		return results
	}

	maxFailures := int64(o.failureRatio * float64(len(segments)))
	if maxFailures < 1 {
		maxFailures = 1
	}

	synth := &segmentSynthesizer{
		engine:  o.engine,
		timeout: o.timeout,
		retries: o.retries,
		rate:    o.rate,
		volume:  o.volume,
		logger:  o.logger,
	}

	var (
		wg       sync.WaitGroup
		failures atomic.Int64
		sem      = make(chan struct{}, o.concurrency)
	)

	dispatched := 0
loop:
	for i, seg := range segments {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			break loop
		}

		// Check the threshold after acquiring a slot so recently finished
		// segments are counted.
		if failures.Load() >= maxFailures {
			<-sem
			o.logger.Error("aborting job: failure threshold reached",
				"failures", failures.Load(), "total", len(segments))
			break
		}
		dispatched = i + 1

		wg.Add(1)
		go func(i int, seg Segment) {
			defer wg.Done()
			defer func() { <-sem }()

			results[i] = synth.synthesize(ctx, seg)
			if results[i].Err != nil {
				failures.Add(1)
				o.logger.Error("segment synthesis failed",
					"segment", seg.Index, "voice", seg.Voice, "err", results[i].Err)
			} else {
				o.logger.Debug("segment synthesized",
					"segment", seg.Index,
					"bytes", len(results[i].Audio),
					"retries", results[i].Retries,
					"elapsed", results[i].Elapsed)
			}
		}(i, seg)
	}

	wg.Wait()

	for i := dispatched; i < len(segments); i++ {
		err := ErrJobAborted
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		results[i] = SegmentResult{Index: segments[i].Index, Err: err}
	}

	return results
}
