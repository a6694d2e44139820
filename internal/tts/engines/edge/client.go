// Package edge synthesizes speech through the Microsoft Edge read-aloud
// service over a websocket, one connection per request.
package edge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/dgnsrekt/edge-tts-mcp/internal/tts/engines"
)

// Client implements engines.Synthesizer against the Edge read-aloud service.
type Client struct {
	dialer *websocket.Dialer
	httpc  *http.Client
	logger *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger replaces the default logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithHTTPClient replaces the HTTP client used for the voice catalog.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New returns a ready Client.
func New(opts ...Option) *Client {
	c := &Client{
		dialer: &websocket.Dialer{
			HandshakeTimeout: 15 * time.Second,
		},
		httpc:  &http.Client{Timeout: 30 * time.Second},
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Synthesize sends one SSML request over a fresh websocket connection and
// accumulates binary audio frames until the service signals turn.end.
func (c *Client) Synthesize(ctx context.Context, req engines.Request) ([]byte, error) {
	ssml := req.SSML
	if ssml == "" {
		ssml = buildSSML(req.Text, req.Voice, req.Rate, req.Volume)
	}

	now := time.Now()
	url := fmt.Sprintf("%s?TrustedClientToken=%s&Sec-MS-GEC=%s&Sec-MS-GEC-Version=%s&ConnectionId=%s",
		wssEndpoint, trustedClientToken, secMSGEC(now), secGECVersion, connectID())

	header := http.Header{}
	header.Set("Pragma", "no-cache")
	header.Set("Cache-Control", "no-cache")
	header.Set("Origin", wsOrigin)
	header.Set("User-Agent", chromeUA)

	conn, resp, err := c.dialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusForbidden {
			return nil, engines.NewPermanent(req.Voice, fmt.Errorf("handshake rejected: %w", err))
		}
		return nil, engines.NewTransient(req.Voice, fmt.Errorf("dialing service: %w", err))
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var audio []byte
	g, gctx := errgroup.WithContext(ctx)

	// Unblock reads when the caller gives up.
	g.Go(func() error {
		<-gctx.Done()
		conn.Close()
		return nil
	})

	g.Go(func() error {
		defer cancel()

		if err := conn.WriteMessage(websocket.TextMessage, []byte(speechConfigMessage(now))); err != nil {
			return engines.NewTransient(req.Voice, fmt.Errorf("sending speech config: %w", err))
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte(ssmlMessage(connectID(), ssml, now))); err != nil {
			return engines.NewTransient(req.Voice, fmt.Errorf("sending request: %w", err))
		}

		for {
			kind, frame, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return classifyReadError(req.Voice, err)
			}

			switch kind {
			case websocket.BinaryMessage:
				if payload, ok := audioPayload(frame); ok {
					audio = append(audio, payload...)
				}
			case websocket.TextMessage:
				headers, _ := parseHeaders(string(frame))
				if headers["Path"] == "turn.end" {
					return nil
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(audio) == 0 {
		return nil, engines.NewPermanent(req.Voice, engines.ErrNoAudio)
	}

	c.logger.Debug("synthesis exchange complete", "voice", req.Voice, "bytes", len(audio))
	return audio, nil
}

// classifyReadError decides whether a websocket failure is worth retrying.
// Closure before turn.end and server errors are treated as transient. The
// service answers an SSML document naming a voice it does not have with a
// policy-violation close; other rejection codes mean malformed input.
func classifyReadError(voice string, err error) error {
	if websocket.IsCloseError(err, websocket.ClosePolicyViolation) {
		return engines.NewPermanent(voice, fmt.Errorf("%w: %v", engines.ErrVoiceUnknown, err))
	}
	if websocket.IsCloseError(err,
		websocket.CloseUnsupportedData,
		websocket.CloseInvalidFramePayloadData) {
		return engines.NewPermanent(voice, fmt.Errorf("request rejected: %w", err))
	}
	return engines.NewTransient(voice, fmt.Errorf("reading response: %w", err))
}

// ListVoices fetches the service's voice catalog.
func (c *Client) ListVoices(ctx context.Context) ([]engines.Voice, error) {
	url := fmt.Sprintf("%s?trustedclienttoken=%s&Sec-MS-GEC=%s&Sec-MS-GEC-Version=%s",
		voicesEndpoint, trustedClientToken, secMSGEC(time.Now()), secGECVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building voice list request: %w", err)
	}
	req.Header.Set("User-Agent", chromeUA)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching voice list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("voice list request failed: %s", resp.Status)
	}

	var voices []engines.Voice
	if err := json.NewDecoder(resp.Body).Decode(&voices); err != nil {
		return nil, fmt.Errorf("decoding voice list: %w", err)
	}
	return voices, nil
}
