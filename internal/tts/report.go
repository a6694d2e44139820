package tts

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// summarize folds per-segment results into a caller-facing job report. Audio
// assembly happens elsewhere; this only classifies outcomes and totals.
func summarize(requestID string, results []SegmentResult, elapsed time.Duration) JobReport {
	report := JobReport{
		RequestID:      requestID,
		TotalSegments:  len(results),
		ProcessingTime: fmt.Sprintf("%.2fs", elapsed.Seconds()),
	}

	for _, r := range results {
		seg := SegmentReport{
			Index:     r.Index,
			Status:    "ok",
			WordCount: r.WordCount,
			Retries:   r.Retries,
		}
		if r.Failed() {
			seg.Status = "failed"
			seg.Error = r.Err.Error()
			report.FailedSegments = append(report.FailedSegments, r.Index)
		} else {
			report.WordCount += r.WordCount
			report.AudioBytes += int64(len(r.Audio))
		}
		report.Segments = append(report.Segments, seg)
	}

	switch len(report.FailedSegments) {
	case 0:
		report.Status = StatusSuccess
	case len(results):
		report.Status = StatusFailed
	default:
		report.Status = StatusPartial
	}

	if report.AudioBytes > 0 {
		report.AudioSize = humanize.Bytes(uint64(report.AudioBytes))
	}

	return report
}

// failWrite marks a report failed because the assembled audio could not be
// written. Per-segment statuses stay as synthesized; the job fails because no
// artifact was delivered.
func failWrite(report JobReport, err error, logger *log.Logger) JobReport {
	logger.Error("writing output failed", "request", report.RequestID, "err", err)
	report.Status = StatusFailed
	report.Error = err.Error()
	report.OutputFile = ""
	return report
}

// successfulAudio returns the audio buffers of the non-failed results in
// segment order.
func successfulAudio(results []SegmentResult) [][]byte {
	var out [][]byte
	for _, r := range results {
		if !r.Failed() && len(r.Audio) > 0 {
			out = append(out, r.Audio)
		}
	}
	return out
}
