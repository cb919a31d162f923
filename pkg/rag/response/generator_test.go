package response

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"advisor-chat-be/internal/entity"
	"advisor-chat-be/internal/repository/contract"
	"advisor-chat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProvider struct {
	reply string
	err   error
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.reply, p.err
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.reply, p.err
}

func userTurn(content string) []llm.Message {
	return []llm.Message{{Role: "user", Content: content}}
}

func TestGenerateUsesProvider(t *testing.T) {
	g := NewGenerator(&stubProvider{reply: "model answer"}, DefaultConfig(), zap.NewNop())

	res := g.Generate(context.Background(), "system", userTurn("hello"), nil, nil)
	assert.Equal(t, "model answer", res.Text)
	assert.False(t, res.Fallback)
}

func TestGenerateFallsBackOnProviderError(t *testing.T) {
	g := NewGenerator(&stubProvider{err: errors.New("rate limited")}, DefaultConfig(), zap.NewNop())

	res := g.Generate(context.Background(), "system", userTurn("tell me about roth conversions"), nil, nil)
	assert.True(t, res.Fallback)
	assert.Contains(t, res.Text, "Roth conversion")
}

func TestGenerateWithoutProviderUsesTemplates(t *testing.T) {
	g := NewGenerator(nil, DefaultConfig(), zap.NewNop())

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"roth topic", "should I do a roth conversion", "Roth conversion"},
		{"social security topic", "when is the best social security timing", "Social Security"},
		{"general topic", "help me plan", "retirement planning questions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := g.Generate(context.Background(), "system", userTurn(tt.message), nil, nil)
			assert.True(t, res.Fallback)
			assert.Contains(t, res.Text, tt.want)
		})
	}
}

func TestTemplateResponseCarriesFrameworkSections(t *testing.T) {
	g := NewGenerator(nil, DefaultConfig(), zap.NewNop())

	queries := []string{
		"should I do a roth conversion",
		"when is the best social security timing",
		"help me plan",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			res := g.Generate(context.Background(), "system", userTurn(q), nil, nil)
			require.True(t, res.Fallback)
			assert.Contains(t, res.Text, "**Where are you today?**")
			assert.Contains(t, res.Text, "**What options align with your goals?**")
			assert.Contains(t, res.Text, "**What's the next best step?**")
		})
	}
}

func TestTemplateResponseEndsWithSchedulingPrompt(t *testing.T) {
	g := NewGenerator(nil, DefaultConfig(), zap.NewNop())

	// The scheduling call-to-action closes the answer even when source
	// lines are appended.
	chunks := []*contract.RetrievedChunk{
		{Chunk: &entity.Chunk{Content: "a"}, DocumentTitle: "Roth Guide"},
	}

	for _, tc := range []struct {
		name   string
		chunks []*contract.RetrievedChunk
	}{
		{"without sources", nil},
		{"with sources", chunks},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res := g.Generate(context.Background(), "system", userTurn("roth"), tc.chunks, nil)
			require.True(t, res.Fallback)
			assert.Contains(t, res.Text, "Schedule a complimentary clarity call")
			assert.True(t, strings.HasSuffix(res.Text, schedulingPrompt),
				"scheduling prompt should close the answer")
		})
	}
}

func TestTemplateResponseIsDeterministic(t *testing.T) {
	g := NewGenerator(nil, DefaultConfig(), zap.NewNop())

	first := g.Generate(context.Background(), "system", userTurn("roth"), nil, nil)
	second := g.Generate(context.Background(), "system", userTurn("roth"), nil, nil)
	assert.Equal(t, first.Text, second.Text)
}

func TestTemplateResponseIncludesSources(t *testing.T) {
	published := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	chunks := []*contract.RetrievedChunk{
		{Chunk: &entity.Chunk{Content: "a"}, DocumentTitle: "Roth Guide", PublishedDate: &published},
		{Chunk: &entity.Chunk{Content: "b"}, DocumentTitle: "Tax Primer"},
		{Chunk: &entity.Chunk{Content: "c"}, DocumentTitle: "Should Not Appear"},
	}
	g := NewGenerator(nil, DefaultConfig(), zap.NewNop())

	res := g.Generate(context.Background(), "system", userTurn("roth"), chunks, nil)
	require.True(t, res.Fallback)
	assert.Contains(t, res.Text, "**Sources:**")
	assert.Contains(t, res.Text, "- Roth Guide (2024-03-01)")
	assert.Contains(t, res.Text, "- Tax Primer (N/A)")
	assert.NotContains(t, res.Text, "Should Not Appear")
}

func TestGenerateFallsBackOnEmptyReply(t *testing.T) {
	g := NewGenerator(&stubProvider{reply: "   "}, DefaultConfig(), zap.NewNop())

	res := g.Generate(context.Background(), "system", userTurn("hello"), nil, nil)
	assert.True(t, res.Fallback)
}
