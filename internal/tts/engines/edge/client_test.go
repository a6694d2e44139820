package edge

import (
	"errors"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/dgnsrekt/edge-tts-mcp/internal/tts/engines"
)

func TestClassifyReadError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		transient    bool
		voiceUnknown bool
	}{
		{
			"policy violation is an unknown voice",
			&websocket.CloseError{Code: websocket.ClosePolicyViolation, Text: "policy"},
			false,
			true,
		},
		{
			"unsupported data is permanent",
			&websocket.CloseError{Code: websocket.CloseUnsupportedData, Text: "bad ssml"},
			false,
			false,
		},
		{
			"invalid frame payload is permanent",
			&websocket.CloseError{Code: websocket.CloseInvalidFramePayloadData},
			false,
			false,
		},
		{
			"abnormal closure is transient",
			&websocket.CloseError{Code: websocket.CloseAbnormalClosure},
			true,
			false,
		},
		{
			"plain transport error is transient",
			errors.New("read tcp: connection reset"),
			true,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyReadError("en-US-GuyNeural", tt.err)
			if engines.IsTransient(got) != tt.transient {
				t.Errorf("IsTransient = %v, want %v", engines.IsTransient(got), tt.transient)
			}
			if errors.Is(got, engines.ErrVoiceUnknown) != tt.voiceUnknown {
				t.Errorf("ErrVoiceUnknown match = %v, want %v",
					errors.Is(got, engines.ErrVoiceUnknown), tt.voiceUnknown)
			}
		})
	}
}
