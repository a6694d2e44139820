// Package engines defines the contract between the synthesis pipeline and
// concrete speech providers.
package engines

import "context"

// Request describes one synthesis call against a provider.
type Request struct {
	// Text is the plain text to speak. Ignored when SSML is set.
	Text string

	// SSML carries a full <speak> document. When non-empty it is sent to the
	// provider verbatim and Text, Rate and Volume are ignored.
	SSML string

	// Voice is the provider voice identifier (e.g. "en-US-AriaNeural").
	Voice string

	// Rate is a signed percentage adjustment ("+0%", "-10%").
	Rate string

	// Volume is a signed percentage adjustment ("+0%", "+20%").
	Volume string
}

// Voice describes one entry of a provider's voice catalog.
type Voice struct {
	Name           string   `json:"Name"`
	ShortName      string   `json:"ShortName"`
	Gender         string   `json:"Gender"`
	Locale         string   `json:"Locale"`
	FriendlyName   string   `json:"FriendlyName,omitempty"`
	SuggestedCodec string   `json:"SuggestedCodec,omitempty"`
	StyleList      []string `json:"StyleList,omitempty"`
}

// Synthesizer is the narrow capability a speech provider must offer. One call
// produces the complete audio for one request; providers emit a constant,
// frame-aligned codec per request so callers may concatenate results byte-wise.
type Synthesizer interface {
	// Synthesize converts one request into raw audio bytes. Failures are
	// reported as *SynthesisError so callers can distinguish transient faults
	// from permanent rejections.
	Synthesize(ctx context.Context, req Request) ([]byte, error)

	// ListVoices returns the provider's voice catalog.
	ListVoices(ctx context.Context) ([]Voice, error)
}
