package tts

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sahilm/fuzzy"

	"github.com/dgnsrekt/edge-tts-mcp/internal/tts/audio"
	"github.com/dgnsrekt/edge-tts-mcp/internal/tts/engines"
	"github.com/dgnsrekt/edge-tts-mcp/internal/tts/segment"
	"github.com/dgnsrekt/edge-tts-mcp/internal/tts/voice"
)

// Service is the high-level synthesis API: it validates requests, segments
// text, dispatches synthesis, and assembles output files.
type Service struct {
	cfg      Config
	engine   engines.Synthesizer
	resolver *voice.Resolver
	splitter *segment.Splitter
	orch     *Orchestrator
	logger   *log.Logger
	lastID   atomic.Int64
}

// NewService wires a Service around a provider engine.
func NewService(cfg Config, engine engines.Synthesizer, logger *log.Logger) *Service {
	return &Service{
		cfg:      cfg,
		engine:   engine,
		resolver: voice.NewResolver(),
		splitter: segment.New(cfg.ChunkSize),
		orch:     NewOrchestrator(engine, cfg, logger),
		logger:   logger,
	}
}

// TextToSpeechRequest carries the parameters of a plain synthesis job.
type TextToSpeechRequest struct {
	Text       string
	Voice      string
	Language   string
	Rate       string
	Volume     string
	OutputPath string
}

// SSMLRequest carries a raw SSML document for single-shot synthesis.
type SSMLRequest struct {
	SSML       string
	Voice      string
	OutputPath string
}

// ConversationRequest carries a multi-speaker synthesis job. RequestID may be
// preassigned by callers that track the job externally; when empty a fresh id
// is generated.
type ConversationRequest struct {
	Turns      []ConversationTurn
	Language   string
	Rate       string
	Volume     string
	OutputPath string
	RequestID  string
}

// TextToSpeech validates, segments, and synthesizes text into a single audio
// file. Segment failures are reported rather than fatal; the report's status
// tells the caller whether the output is complete, partial, or absent.
func (s *Service) TextToSpeech(ctx context.Context, req TextToSpeechRequest) (JobReport, error) {
	start := time.Now()
	requestID := s.nextRequestID()

	if err := s.validateText(req.Text); err != nil {
		return JobReport{}, err
	}

	rate, volume, err := s.prosody(req.Rate, req.Volume)
	if err != nil {
		return JobReport{}, err
	}

	voiceName, language, err := s.resolveVoice(req.Voice, req.Language)
	if err != nil {
		return JobReport{}, invalidField("language", err)
	}

	chunks := s.splitter.Split(req.Text)
	segments := make([]Segment, len(chunks))
	for i, c := range chunks {
		segments[i] = Segment{Index: i, Text: c, Voice: voiceName}
	}

	s.logger.Info("starting synthesis",
		"request", requestID,
		"voice", voiceName,
		"segments", len(segments),
		"chars", len([]rune(req.Text)))

	orch := s.orch.withProsody(rate, volume)
	results := orch.Run(ctx, segments)

	report := summarize(requestID, results, time.Since(start))
	report.Voice = voiceName
	report.Language = language

	if report.Status == StatusFailed {
		report.Error = "all segments failed"
		return report, nil
	}

	path := req.OutputPath
	if path == "" {
		path = filepath.Join(s.cfg.OutputDir, fmt.Sprintf("edge_tts_output_%s.mp3", requestID))
	}
	if _, err := audio.WriteFile(path, successfulAudio(results)); err != nil {
		return failWrite(report, err, s.logger), nil
	}
	report.OutputFile = path
	report.ProcessingTime = fmt.Sprintf("%.2fs", time.Since(start).Seconds())

	s.logger.Info("synthesis complete",
		"request", requestID,
		"status", report.Status,
		"output", path,
		"size", report.AudioSize)

	return report, nil
}

// SpeakSSML synthesizes a raw SSML document in a single provider request.
// The document must be well formed with a <speak> root; no chunking is
// applied because cutting SSML mid-element would corrupt it.
func (s *Service) SpeakSSML(ctx context.Context, req SSMLRequest) (JobReport, error) {
	start := time.Now()
	requestID := s.nextRequestID()

	if err := validateSSML(req.SSML); err != nil {
		return JobReport{}, err
	}
	if len([]rune(req.SSML)) > s.cfg.MaxTextLength {
		return JobReport{}, invalidField("ssml", ErrTextTooLong)
	}

	voiceName := req.Voice
	if voiceName == "" {
		voiceName = s.cfg.Voice
	}

	synth := &segmentSynthesizer{
		engine:  s.engine,
		timeout: s.cfg.SynthTimeout,
		retries: s.cfg.RetryAttempts,
		logger:  s.logger,
	}
	result := synth.synthesizeSSML(ctx, req.SSML, voiceName)

	report := summarize(requestID, []SegmentResult{result}, time.Since(start))
	report.Voice = voiceName
	if report.Status == StatusFailed {
		report.Error = result.Err.Error()
		return report, nil
	}

	path := req.OutputPath
	if path == "" {
		path = filepath.Join(s.cfg.OutputDir, fmt.Sprintf("edge_tts_output_%s.mp3", requestID))
	}
	if _, err := audio.WriteFile(path, [][]byte{result.Audio}); err != nil {
		return failWrite(report, err, s.logger), nil
	}
	report.OutputFile = path
	report.ProcessingTime = fmt.Sprintf("%.2fs", time.Since(start).Seconds())

	return report, nil
}

// SynthesizeConversation synthesizes alternating speaker turns into one audio
// file, assigning a fixed male/female voice pair for the language. Speaker and
// language resolution fail before any provider work begins.
func (s *Service) SynthesizeConversation(ctx context.Context, req ConversationRequest) (JobReport, error) {
	start := time.Now()
	requestID := req.RequestID
	if requestID == "" {
		requestID = s.nextRequestID()
	}

	if len(req.Turns) == 0 {
		return JobReport{}, invalidField("conversation", ErrEmptyConversation)
	}

	rate, volume, err := s.prosody(req.Rate, req.Volume)
	if err != nil {
		return JobReport{}, err
	}

	language := req.Language
	if language == "" {
		language = "en-US"
	}

	total := 0
	var segments []Segment
	for i, turn := range req.Turns {
		if strings.TrimSpace(turn.Text) == "" {
			return JobReport{}, invalidField(fmt.Sprintf("turn %d", i), ErrEmptyText)
		}
		voiceName, err := s.resolver.ResolveRole(language, turn.Speaker)
		if err != nil {
			return JobReport{}, invalidField(fmt.Sprintf("turn %d", i), err)
		}
		total += len([]rune(turn.Text))

		// Long turns get the same chunking as plain synthesis.
		for _, chunk := range s.splitter.Split(turn.Text) {
			segments = append(segments, Segment{
				Index: len(segments),
				Text:  chunk,
				Voice: voiceName,
				Role:  strings.ToLower(turn.Speaker),
			})
		}
	}
	if total > s.cfg.MaxTextLength {
		return JobReport{}, invalidField("conversation", ErrTextTooLong)
	}

	canonical, err := s.resolver.Canonicalize(language)
	if err != nil {
		return JobReport{}, invalidField("language", err)
	}

	s.logger.Info("starting conversation synthesis",
		"request", requestID,
		"language", canonical,
		"turns", len(req.Turns),
		"segments", len(segments))

	results := s.orch.withProsody(rate, volume).Run(ctx, segments)

	report := summarize(requestID, results, time.Since(start))
	report.Language = canonical
	if report.Status == StatusFailed {
		report.Error = "all segments failed"
		return report, nil
	}

	path := req.OutputPath
	if path == "" {
		path = filepath.Join(s.cfg.OutputDir, fmt.Sprintf("podcast_conversation_%s.mp3", requestID))
	}
	if _, err := audio.WriteFile(path, successfulAudio(results)); err != nil {
		return failWrite(report, err, s.logger), nil
	}
	report.OutputFile = path
	report.ProcessingTime = fmt.Sprintf("%.2fs", time.Since(start).Seconds())

	return report, nil
}

// ListVoices returns the provider's voice catalog, optionally narrowed to a
// language (locale prefix match) and by a fuzzy filter over name, locale, and
// friendly name.
func (s *Service) ListVoices(ctx context.Context, language, filter string) ([]VoiceInfo, error) {
	voices, err := s.engine.ListVoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing voices: %w", err)
	}

	if language = strings.TrimSpace(language); language != "" {
		prefix := strings.ToLower(language)
		kept := voices[:0:0]
		for _, v := range voices {
			if strings.HasPrefix(strings.ToLower(v.Locale), prefix) {
				kept = append(kept, v)
			}
		}
		voices = kept
	}

	if filter = strings.TrimSpace(filter); filter != "" {
		matches := fuzzy.FindFrom(filter, voiceSource(voices))
		filtered := make([]engines.Voice, len(matches))
		for i, m := range matches {
			filtered[i] = voices[m.Index]
		}
		voices = filtered
	}

	out := make([]VoiceInfo, len(voices))
	for i, v := range voices {
		out[i] = voiceInfo(v)
	}
	return out, nil
}

// Languages returns the supported language codes for language-based voice
// selection.
func (s *Service) Languages() []string { return s.resolver.Languages() }

// ConversationLanguages returns the language codes that have a conversation
// voice pair.
func (s *Service) ConversationLanguages() []string { return s.resolver.ConversationLanguages() }

func (s *Service) validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return invalidField("text", ErrEmptyText)
	}
	if n := len([]rune(text)); n > s.cfg.MaxTextLength {
		return invalidField("text", fmt.Errorf("%w: %d > %d", ErrTextTooLong, n, s.cfg.MaxTextLength))
	}
	return nil
}

func (s *Service) prosody(rate, volume string) (string, string, error) {
	if rate == "" {
		rate = s.cfg.Rate
	}
	if volume == "" {
		volume = s.cfg.Volume
	}
	if err := ValidatePercent(rate); err != nil {
		return "", "", invalidField("rate", fmt.Errorf("%q: %w", rate, err))
	}
	if err := ValidatePercent(volume); err != nil {
		return "", "", invalidField("volume", fmt.Errorf("%q: %w", volume, err))
	}
	return rate, volume, nil
}

// resolveVoice picks the synthesis voice: an explicit voice wins, then a
// language lookup, then the configured default.
func (s *Service) resolveVoice(explicit, language string) (voiceName, canonical string, err error) {
	if explicit != "" {
		return explicit, language, nil
	}
	if language != "" {
		canonical, err = s.resolver.Canonicalize(language)
		if err != nil {
			return "", "", err
		}
		voiceName, err = s.resolver.Resolve(canonical)
		return voiceName, canonical, err
	}
	return s.cfg.Voice, "", nil
}

// NewRequestID allocates a unique request id for externally tracked jobs.
func (s *Service) NewRequestID() string { return s.nextRequestID() }

func (s *Service) nextRequestID() string {
	now := time.Now().Unix()
	for {
		last := s.lastID.Load()
		if now <= last {
			now = last + 1
		}
		if s.lastID.CompareAndSwap(last, now) {
			return fmt.Sprintf("req_%d", now)
		}
	}
}

// validateSSML checks that the document is well-formed XML rooted at <speak>.
func validateSSML(doc string) error {
	if strings.TrimSpace(doc) == "" {
		return invalidField("ssml", ErrEmptyText)
	}
	dec := xml.NewDecoder(strings.NewReader(doc))
	sawRoot := false
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return invalidField("ssml", fmt.Errorf("%w: %v", ErrInvalidSSML, err))
		}
		if start, ok := tok.(xml.StartElement); ok && !sawRoot {
			if start.Name.Local != "speak" {
				return invalidField("ssml", fmt.Errorf("%w: root element is <%s>", ErrInvalidSSML, start.Name.Local))
			}
			sawRoot = true
		}
	}
	if !sawRoot {
		return invalidField("ssml", ErrInvalidSSML)
	}
	return nil
}

// voiceSource adapts the provider voice list for fuzzy matching.
type voiceSource []engines.Voice

func (v voiceSource) String(i int) string {
	return v[i].ShortName + " " + v[i].Locale + " " + v[i].FriendlyName
}

func (v voiceSource) Len() int { return len(v) }
