package tts

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/edge-tts-mcp/internal/tts/engines"
)

// segmentSynthesizer runs a single segment through the provider with a
// per-attempt timeout and bounded retries on transient failures.
type segmentSynthesizer struct {
	engine  engines.Synthesizer
	timeout time.Duration
	retries int
	rate    string
	volume  string
	logger  *log.Logger
}

// synthesizeSSML runs a raw SSML document through the provider with the same
// timeout and retry discipline as plain segments.
func (s *segmentSynthesizer) synthesizeSSML(ctx context.Context, doc, voice string) SegmentResult {
	return s.run(ctx, Segment{Voice: voice}, engines.Request{SSML: doc, Voice: voice})
}

// synthesize produces the audio for one segment. In-flight work is allowed to
// drain after job cancellation: each attempt gets its own deadline detached
// from the job context, and cancellation is only honored between attempts.
func (s *segmentSynthesizer) synthesize(ctx context.Context, seg Segment) SegmentResult {
	req := engines.Request{
		Text:   seg.Text,
		Voice:  seg.Voice,
		Rate:   s.rate,
		Volume: s.volume,
	}
	return s.run(ctx, seg, req)
}

func (s *segmentSynthesizer) run(ctx context.Context, seg Segment, req engines.Request) SegmentResult {
	result := SegmentResult{
		Index:     seg.Index,
		WordCount: len(strings.Fields(seg.Text)),
	}

	start := time.Now()
	for attempt := 0; ; attempt++ {
		attemptCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		audio, err := s.engine.Synthesize(attemptCtx, req)
		cancel()

		if err == nil {
			result.Audio = audio
			result.Retries = attempt
			result.Elapsed = time.Since(start)
			return result
		}

		if attempt >= s.retries || !engines.IsTransient(err) || ctx.Err() != nil {
			result.Err = err
			result.Retries = attempt
			result.Elapsed = time.Since(start)
			return result
		}

		s.logger.Warn("retrying segment after transient failure",
			"segment", seg.Index,
			"voice", seg.Voice,
			"attempt", attempt+1,
			"err", err)
	}
}
