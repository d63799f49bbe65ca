package phrasing

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
)

func TestStatic_AlwaysReturnsFallback(t *testing.T) {
	g := Static{}
	got := g.Generate(context.Background(), "say something clever", 100, "literal fallback")
	assert.Equal(t, "literal fallback", got)
}

func TestExtractText(t *testing.T) {
	assert.Empty(t, extractText(nil))
	assert.Empty(t, extractText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: nil}},
	}
	assert.Empty(t, extractText(resp))

	resp = &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("  Hello "), genai.Text("there ")}},
		}},
	}
	assert.Equal(t, "Hello there", extractText(resp))
}
