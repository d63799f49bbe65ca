// Package phrasing renders state-machine reply instructions into natural
// language. The generator contract is strict: Generate never fails past this
// boundary. Any internal error, timeout, or empty model output yields the
// caller-provided fallback text.
package phrasing

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// systemPreamble frames every generation request. The assistant asks
// questions; it must never answer them for the candidate.
const systemPreamble = "You are TalentScout, a professional AI hiring assistant. " +
	"Your job is to ASK questions, not answer them. Keep responses brief (1-2 sentences), " +
	"natural, and engaging. Always ASK the candidate questions - never provide answers " +
	"or solutions. Be warm and encouraging while gathering information."

// Gemini generates phrasing through the Gemini API.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
	log         *zap.Logger
}

// NewGemini creates a Gemini-backed generator.
func NewGemini(ctx context.Context, apiKey, model string, temperature float32, log *zap.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &Gemini{
		client:      client,
		model:       model,
		temperature: temperature,
		log:         log,
	}, nil
}

// Generate renders the instruction into a short conversational reply. On any
// failure the fallback is returned verbatim and the turn proceeds normally;
// there are no retries.
func (g *Gemini) Generate(ctx context.Context, instruction string, maxTokens int, fallback string) string {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(g.temperature)
	model.SetMaxOutputTokens(int32(maxTokens))
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPreamble)}}

	resp, err := model.GenerateContent(ctx, genai.Text(instruction))
	if err != nil {
		g.log.Warn("phrasing generation failed, using fallback", zap.Error(err))
		return fallback
	}

	text := extractText(resp)
	if text == "" {
		g.log.Warn("phrasing generation returned no text, using fallback")
		return fallback
	}
	return text
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// extractText pulls the concatenated text parts out of a Gemini response,
// returning "" when there is nothing usable.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}
