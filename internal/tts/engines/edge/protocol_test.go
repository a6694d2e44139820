package edge

import (
	"encoding/binary"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestSecMSGECFormat(t *testing.T) {
	token := secMSGEC(time.Unix(1_700_000_000, 0))

	if !regexp.MustCompile(`^[0-9A-F]{64}$`).MatchString(token) {
		t.Errorf("token is not uppercase sha256 hex: %q", token)
	}
}

func TestSecMSGECStableWithinWindow(t *testing.T) {
	// Clock values inside the same 5 minute window produce the same token.
	ts := int64(1_700_000_100)
	window := time.Unix(ts-ts%300, 0)
	if secMSGEC(window) != secMSGEC(window.Add(4*time.Minute+59*time.Second)) {
		t.Error("token changed within a 5 minute window")
	}
	if secMSGEC(window) == secMSGEC(window.Add(5*time.Minute)) {
		t.Error("token did not rotate across windows")
	}
}

func TestConnectIDShape(t *testing.T) {
	a, b := connectID(), connectID()
	if a == b {
		t.Error("connect ids collide")
	}
	if !regexp.MustCompile(`^[0-9a-f]{32}$`).MatchString(a) {
		t.Errorf("unexpected id shape: %q", a)
	}
}

func TestBuildSSMLEscapesText(t *testing.T) {
	ssml := buildSSML(`Tom & Jerry say "1 < 2"`, "en-US-GuyNeural", "+10%", "-5%")

	if strings.Contains(ssml, "Tom & Jerry") {
		t.Error("ampersand not escaped")
	}
	for _, want := range []string{
		"&amp;",
		"&lt;",
		"name='en-US-GuyNeural'",
		"rate='+10%'",
		"volume='-5%'",
	} {
		if !strings.Contains(ssml, want) {
			t.Errorf("ssml missing %q:\n%s", want, ssml)
		}
	}
	if !strings.HasPrefix(ssml, "<speak ") || !strings.HasSuffix(ssml, "</speak>") {
		t.Errorf("ssml not wrapped in <speak>: %s", ssml)
	}
}

func TestSpeechConfigMessage(t *testing.T) {
	msg := speechConfigMessage(time.Unix(1_700_000_000, 0))

	headers, body := parseHeaders(msg)
	if headers["Path"] != "speech.config" {
		t.Errorf("path = %q", headers["Path"])
	}
	if !strings.Contains(body, outputFormat) {
		t.Errorf("body missing output format: %s", body)
	}
}

func TestSSMLMessage(t *testing.T) {
	msg := ssmlMessage("abc123", "<speak>hi</speak>", time.Unix(1_700_000_000, 0))

	headers, body := parseHeaders(msg)
	if headers["X-RequestId"] != "abc123" {
		t.Errorf("request id = %q", headers["X-RequestId"])
	}
	if headers["Path"] != "ssml" {
		t.Errorf("path = %q", headers["Path"])
	}
	if body != "<speak>hi</speak>" {
		t.Errorf("body = %q", body)
	}
}

func frameWith(header string, payload []byte) []byte {
	frame := make([]byte, 2, 2+len(header)+len(payload))
	binary.BigEndian.PutUint16(frame, uint16(len(header)))
	frame = append(frame, header...)
	return append(frame, payload...)
}

func TestAudioPayload(t *testing.T) {
	payload := []byte{0xff, 0xf3, 0x01, 0x02}

	frame := frameWith("X-RequestId:abc\r\nPath:audio\r\n\r\n", payload)
	got, ok := audioPayload(frame)
	if !ok {
		t.Fatal("audio frame not recognized")
	}
	if string(got) != string(payload) {
		t.Errorf("payload = %v, want %v", got, payload)
	}
}

func TestAudioPayloadRejectsNonAudioFrames(t *testing.T) {
	tests := []struct {
		name  string
		frame []byte
	}{
		{"metadata path", frameWith("Path:audio.metadata\r\n\r\n", []byte("{}"))},
		{"no path", frameWith("X-RequestId:abc\r\n\r\n", []byte("x"))},
		{"truncated header", []byte{0x00}},
		{"header longer than frame", []byte{0x00, 0xff, 'P'}},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := audioPayload(tt.frame); ok {
				t.Error("frame should not be treated as audio")
			}
		})
	}
}
