package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dgnsrekt/edge-tts-mcp/internal/tts"
)

// Parameter types for tools with MCP schema descriptions for LLMs.
type TextToSpeechParams struct {
	Text       string  `json:"text" mcp:"The text to synthesize into speech"`
	Voice      *string `json:"voice,omitempty" mcp:"Voice short name (e.g. 'en-US-AriaNeural'); overrides language selection"`
	Language   *string `json:"language,omitempty" mcp:"Language code (e.g. 'en-US', 'fr', 'ja'); picks the recommended voice"`
	Rate       *string `json:"rate,omitempty" mcp:"Speech rate as a signed percentage, e.g. '+10%' or '-20%' (default '+0%')"`
	Volume     *string `json:"volume,omitempty" mcp:"Volume as a signed percentage, e.g. '+0%' or '-50%' (default '+0%')"`
	OutputPath *string `json:"output_path,omitempty" mcp:"Where to write the MP3 file (default: configured output directory)"`
}

type PlaySSMLParams struct {
	SSML       string  `json:"ssml" mcp:"A well-formed SSML document rooted at <speak>; sent to the provider unchanged"`
	Voice      *string `json:"voice,omitempty" mcp:"Fallback voice when the SSML does not select one"`
	OutputPath *string `json:"output_path,omitempty" mcp:"Where to write the MP3 file (default: configured output directory)"`
}

type ListVoicesParams struct {
	Language *string `json:"language,omitempty" mcp:"Restrict to a language by locale prefix (e.g. 'en', 'ja-JP')"`
	Filter   *string `json:"filter,omitempty" mcp:"Fuzzy filter over voice name, locale, and friendly name (e.g. 'aria')"`
}

type ConversationTurnParams struct {
	Speaker string `json:"speaker" mcp:"Speaker role: 'male' or 'female'"`
	Text    string `json:"text" mcp:"What this speaker says"`
}

type ConversationParams struct {
	Turns      []ConversationTurnParams `json:"turns" mcp:"Ordered speaker turns of the conversation"`
	Language   *string                  `json:"language,omitempty" mcp:"Conversation language code (default 'en-US'); selects the voice pair"`
	Rate       *string                  `json:"rate,omitempty" mcp:"Speech rate as a signed percentage, e.g. '+10%' (default '+0%')"`
	Volume     *string                  `json:"volume,omitempty" mcp:"Volume as a signed percentage, e.g. '-20%' (default '+0%')"`
	OutputPath *string                  `json:"output_path,omitempty" mcp:"Where to write the MP3 file (default: configured output directory)"`
	Detach     *bool                    `json:"detach,omitempty" mcp:"Return immediately with a request id; poll job_status for the result"`
}

type JobStatusParams struct {
	RequestID string `json:"request_id" mcp:"Request id returned by a detached synthesize_conversation call"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "text_to_speech",
		Title:       "Text to Speech",
		Description: "Converts text to speech with Microsoft Edge neural voices and writes an MP3 file. Long text is split at sentence boundaries and synthesized concurrently.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "Edge Text-to-Speech",
			IdempotentHint: true,
		},
	}, s.handleTextToSpeech)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "play_with_ssml",
		Title:       "SSML to Speech",
		Description: "Synthesizes a raw SSML document, giving full control over voices, prosody, and breaks within a single request.",
		Annotations: &mcp.ToolAnnotations{
			Title:          "SSML Synthesis",
			IdempotentHint: true,
		},
	}, s.handleSSML)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_voices",
		Title:       "List Voices",
		Description: "Lists the available neural voices, optionally narrowed by a fuzzy filter.",
		Annotations: &mcp.ToolAnnotations{
			Title:        "Voice Catalog",
			ReadOnlyHint: true,
		},
	}, s.handleListVoices)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:  "synthesize_conversation",
		Title: "Conversation to Speech",
		Description: fmt.Sprintf("Synthesizes a multi-speaker conversation into one MP3, alternating a male and a female voice for the chosen language. Set detach for long conversations and poll job_status. Supported languages: %s.",
			strings.Join(s.svc.ConversationLanguages(), ", ")),
		Annotations: &mcp.ToolAnnotations{
			Title:          "Podcast Synthesis",
			IdempotentHint: true,
		},
	}, s.handleConversation)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "job_status",
		Title:       "Job Status",
		Description: "Reports the state of a detached synthesis request: submitted, processing, completed, or failed.",
		Annotations: &mcp.ToolAnnotations{
			Title:        "Synthesis Job Status",
			ReadOnlyHint: true,
		},
	}, s.handleJobStatus)
}

func (s *Server) handleTextToSpeech(ctx context.Context, _ *mcp.CallToolRequest, input TextToSpeechParams) (*mcp.CallToolResult, any, error) {
	if cancelled(ctx) {
		return textResult("Request cancelled", false), nil, nil
	}

	s.logger.Debug("text_to_speech called", "chars", len(input.Text))

	report, err := s.svc.TextToSpeech(ctx, tts.TextToSpeechRequest{
		Text:       input.Text,
		Voice:      deref(input.Voice),
		Language:   deref(input.Language),
		Rate:       deref(input.Rate),
		Volume:     deref(input.Volume),
		OutputPath: deref(input.OutputPath),
	})
	if err != nil {
		return textResult(fmt.Sprintf("Error: %v", err), true), nil, nil
	}
	return reportResult(report), nil, nil
}

func (s *Server) handleSSML(ctx context.Context, _ *mcp.CallToolRequest, input PlaySSMLParams) (*mcp.CallToolResult, any, error) {
	if cancelled(ctx) {
		return textResult("Request cancelled", false), nil, nil
	}

	report, err := s.svc.SpeakSSML(ctx, tts.SSMLRequest{
		SSML:       input.SSML,
		Voice:      deref(input.Voice),
		OutputPath: deref(input.OutputPath),
	})
	if err != nil {
		return textResult(fmt.Sprintf("Error: %v", err), true), nil, nil
	}
	return reportResult(report), nil, nil
}

func (s *Server) handleListVoices(ctx context.Context, _ *mcp.CallToolRequest, input ListVoicesParams) (*mcp.CallToolResult, any, error) {
	if cancelled(ctx) {
		return textResult("Request cancelled", false), nil, nil
	}

	voices, err := s.svc.ListVoices(ctx, deref(input.Language), deref(input.Filter))
	if err != nil {
		return textResult(fmt.Sprintf("Error: %v", err), true), nil, nil
	}

	payload := struct {
		Count     int             `json:"count"`
		Languages []string        `json:"languages"`
		Voices    []tts.VoiceInfo `json:"voices"`
	}{Count: len(voices), Languages: s.svc.Languages(), Voices: voices}
	return jsonResult(payload, false), nil, nil
}

func (s *Server) handleConversation(ctx context.Context, _ *mcp.CallToolRequest, input ConversationParams) (*mcp.CallToolResult, any, error) {
	if cancelled(ctx) {
		return textResult("Request cancelled", false), nil, nil
	}

	turns := make([]tts.ConversationTurn, len(input.Turns))
	for i, t := range input.Turns {
		turns[i] = tts.ConversationTurn{Speaker: t.Speaker, Text: t.Text}
	}
	req := tts.ConversationRequest{
		Turns:      turns,
		Language:   deref(input.Language),
		Rate:       deref(input.Rate),
		Volume:     deref(input.Volume),
		OutputPath: deref(input.OutputPath),
	}

	if input.Detach != nil && *input.Detach {
		return s.detachConversation(req), nil, nil
	}

	report, err := s.svc.SynthesizeConversation(ctx, req)
	if err != nil {
		return textResult(fmt.Sprintf("Error: %v", err), true), nil, nil
	}
	return reportResult(report), nil, nil
}

// detachConversation runs the job in the background and hands the caller a
// request id to poll. The job deliberately outlives the tool call.
func (s *Server) detachConversation(req tts.ConversationRequest) *mcp.CallToolResult {
	req.RequestID = s.svc.NewRequestID()
	s.registry.Submit(req.RequestID)

	go func() {
		s.registry.Processing(req.RequestID)
		report, err := s.svc.SynthesizeConversation(context.Background(), req)
		if err != nil {
			s.registry.Fail(req.RequestID, err.Error())
			s.logger.Error("detached conversation failed", "request", req.RequestID, "err", err)
			return
		}
		s.registry.Complete(req.RequestID, report)
	}()

	payload := struct {
		RequestID string       `json:"request_id"`
		State     RequestState `json:"state"`
	}{RequestID: req.RequestID, State: StateSubmitted}
	return jsonResult(payload, false)
}

func (s *Server) handleJobStatus(ctx context.Context, _ *mcp.CallToolRequest, input JobStatusParams) (*mcp.CallToolResult, any, error) {
	if cancelled(ctx) {
		return textResult("Request cancelled", false), nil, nil
	}

	snapshot, err := s.registry.Get(input.RequestID)
	if err != nil {
		return textResult(fmt.Sprintf("Error: %v", err), true), nil, nil
	}
	return jsonResult(snapshot, snapshot.State == StateFailed), nil, nil
}

func cancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func textResult(text string, isErr bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isErr,
	}
}

func jsonResult(v any, isErr bool) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return textResult(fmt.Sprintf("Error: encoding result: %v", err), true)
	}
	return textResult(string(data), isErr)
}

// reportResult renders a job report, flagging fully failed jobs as tool
// errors while partial results stay ordinary output.
func reportResult(report tts.JobReport) *mcp.CallToolResult {
	return jsonResult(report, report.Status == tts.StatusFailed)
}
