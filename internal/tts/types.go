// Package tts orchestrates text segmentation, concurrent synthesis, and audio
// assembly on top of a speech provider.
package tts

import (
	"time"

	"github.com/dgnsrekt/edge-tts-mcp/internal/tts/engines"
)

// Segment is one independently synthesizable unit of a job. Index records its
// position in the original text so results can be reassembled in order.
type Segment struct {
	Index int
	Text  string
	Voice string
	// Role is set for conversation segments ("male"/"female"), empty otherwise.
	Role string
}

// SegmentResult is the outcome of synthesizing one segment.
type SegmentResult struct {
	Index     int
	Audio     []byte
	WordCount int
	Retries   int
	Elapsed   time.Duration
	Err       error
}

// Failed reports whether the segment produced no usable audio.
func (r SegmentResult) Failed() bool { return r.Err != nil }

// JobStatus classifies the overall outcome of a synthesis job.
type JobStatus string

const (
	StatusSuccess JobStatus = "success"
	StatusPartial JobStatus = "partial_success"
	StatusFailed  JobStatus = "failed"
)

// SegmentReport describes one segment's outcome for callers.
type SegmentReport struct {
	Index     int    `json:"index"`
	Status    string `json:"status"`
	WordCount int    `json:"word_count,omitempty"`
	Retries   int    `json:"retries,omitempty"`
	Error     string `json:"error,omitempty"`
}

// JobReport is the caller-facing summary of a completed synthesis job.
type JobReport struct {
	RequestID      string          `json:"request_id"`
	Status         JobStatus       `json:"status"`
	OutputFile     string          `json:"output_file,omitempty"`
	Voice          string          `json:"voice,omitempty"`
	Language       string          `json:"language,omitempty"`
	TotalSegments  int             `json:"total_segments"`
	FailedSegments []int           `json:"failed_segments,omitempty"`
	WordCount      int             `json:"word_count"`
	AudioBytes     int64           `json:"audio_size_bytes"`
	AudioSize      string          `json:"audio_size,omitempty"`
	ProcessingTime string          `json:"processing_time"`
	Segments       []SegmentReport `json:"segments,omitempty"`
	Error          string          `json:"error,omitempty"`
}

// ConversationTurn is one speaker turn in a conversation synthesis request.
type ConversationTurn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// VoiceInfo is the caller-facing shape of a provider voice.
type VoiceInfo struct {
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Locale   string `json:"locale"`
	Friendly string `json:"friendly_name,omitempty"`
}

func voiceInfo(v engines.Voice) VoiceInfo {
	return VoiceInfo{
		Name:     v.ShortName,
		Gender:   v.Gender,
		Locale:   v.Locale,
		Friendly: v.FriendlyName,
	}
}
