package edge

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

const (
	trustedClientToken = "6A5AA1D4EAFF4E9FB37E23D68491D6F4"

	wssEndpoint    = "wss://speech.platform.bing.com/consumer/speech/synthesize/readaloud/edge/v1"
	voicesEndpoint = "https://speech.platform.bing.com/consumer/speech/synthesize/readaloud/voices/list"

	secGECVersion = "1-130.0.2849.68"
	chromeUA      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36 Edg/130.0.0.0"
	wsOrigin      = "chrome-extension://jdiccldimpdaibmpdkjnbmckianbfold"

	outputFormat = "audio-24khz-48kbitrate-mono-mp3"

	// Seconds between the Windows epoch (1601) and the Unix epoch (1970).
	windowsEpochOffset = 11_644_473_600
)

// secMSGEC derives the Sec-MS-GEC handshake token: the SHA-256 of the current
// Windows file time, floored to a 5 minute boundary, concatenated with the
// trusted client token, as uppercase hex.
func secMSGEC(now time.Time) string {
	ticks := now.Unix() + windowsEpochOffset
	ticks -= ticks % 300
	ticks *= 10_000_000 // seconds to 100ns Windows ticks

	sum := sha256.Sum256([]byte(fmt.Sprintf("%d%s", ticks, trustedClientToken)))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// connectID returns a fresh 32-char hex request id for one websocket exchange.
func connectID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// Fall back to a time-derived id; uniqueness per connection is all
		// the service checks.
		binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
	}
	return hex.EncodeToString(b[:])
}

func timestamp(now time.Time) string {
	return now.UTC().Format("Mon Jan 02 2006 15:04:05 GMT+0000 (Coordinated Universal Time)")
}

// speechConfigMessage is the first text frame of every exchange: it selects
// the output codec and boundary metadata.
func speechConfigMessage(now time.Time) string {
	return "X-Timestamp:" + timestamp(now) + "\r\n" +
		"Content-Type:application/json; charset=utf-8\r\n" +
		"Path:speech.config\r\n\r\n" +
		`{"context":{"synthesis":{"audio":{"metadataoptions":{` +
		`"sentenceBoundaryEnabled":"false","wordBoundaryEnabled":"false"},` +
		`"outputFormat":"` + outputFormat + `"}}}}`
}

// ssmlMessage wraps an SSML document in the request text frame.
func ssmlMessage(id, ssml string, now time.Time) string {
	return "X-RequestId:" + id + "\r\n" +
		"Content-Type:application/ssml+xml\r\n" +
		"X-Timestamp:" + timestamp(now) + "Z\r\n" +
		"Path:ssml\r\n\r\n" +
		ssml
}

// buildSSML wraps plain text in the minimal SSML document the service
// accepts, with prosody rate and volume applied.
func buildSSML(text, voice, rate, volume string) string {
	var b strings.Builder
	b.WriteString(`<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xml:lang='en-US'>`)
	b.WriteString(`<voice name='` + voice + `'>`)
	b.WriteString(`<prosody pitch='+0Hz' rate='` + rate + `' volume='` + volume + `'>`)
	xml.EscapeText(&b, []byte(text))
	b.WriteString(`</prosody></voice></speak>`)
	return b.String()
}

// parseHeaders splits a text frame (or a binary frame's header section) into
// its header map and remaining body.
func parseHeaders(msg string) (map[string]string, string) {
	headers := map[string]string{}
	head, body, _ := strings.Cut(msg, "\r\n\r\n")
	for _, line := range strings.Split(head, "\r\n") {
		if key, value, ok := strings.Cut(line, ":"); ok {
			headers[key] = value
		}
	}
	return headers, body
}

// audioPayload extracts the audio bytes of a binary frame. The first two
// bytes carry the big-endian header length; only frames whose header path is
// "audio" hold playable data.
func audioPayload(frame []byte) ([]byte, bool) {
	if len(frame) < 2 {
		return nil, false
	}
	headerLen := int(binary.BigEndian.Uint16(frame[:2]))
	if len(frame) < 2+headerLen {
		return nil, false
	}
	headers, _ := parseHeaders(string(frame[2 : 2+headerLen]))
	if headers["Path"] != "audio" {
		return nil, false
	}
	return frame[2+headerLen:], true
}
