package prompt

import (
	"testing"

	"advisor-chat-be/internal/entity"
	"advisor-chat-be/internal/repository/contract"
	"advisor-chat-be/pkg/llm"
	"advisor-chat-be/pkg/sitefetch"

	"github.com/stretchr/testify/assert"
)

func chunk(title, content string) *contract.RetrievedChunk {
	return &contract.RetrievedChunk{
		Chunk:         &entity.Chunk{Content: content},
		DocumentTitle: title,
	}
}

func TestBuildWithoutContext(t *testing.T) {
	history := []llm.Message{
		{Role: "user", Content: "When should I claim Social Security?"},
	}

	messages := Build("You are a helpful assistant.", nil, nil, history)

	assert.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "You are a helpful assistant.", messages[0].Content)
	assert.Equal(t, history[0], messages[1])
}

func TestBuildInsertsContextBlock(t *testing.T) {
	chunks := []*contract.RetrievedChunk{
		chunk("Roth Guide", "Conversions lock in today's rates."),
	}
	history := []llm.Message{
		{Role: "user", Content: "Tell me about Roth conversions"},
	}

	messages := Build("system prompt", nil, chunks, history)

	assert.Len(t, messages, 3)
	assert.Equal(t, "system", messages[1].Role)
	assert.Contains(t, messages[1].Content, "KNOWLEDGE BASE CONTEXT:")
	assert.Contains(t, messages[1].Content, "[Roth Guide]\nConversions lock in today's rates.")
	// History always comes last so the model sees the current question at the end.
	assert.Equal(t, history[0], messages[2])
}

func TestBuildPreservesHistoryOrder(t *testing.T) {
	history := []llm.Message{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
		{Role: "user", Content: "third"},
	}

	messages := Build("sp", nil, nil, history)

	assert.Len(t, messages, 4)
	assert.Equal(t, "first", messages[1].Content)
	assert.Equal(t, "second", messages[2].Content)
	assert.Equal(t, "third", messages[3].Content)
}

func TestContextBlockSitePagesComeFirst(t *testing.T) {
	pages := []sitefetch.Page{
		{URL: "https://fiatwm.com/tax-planning", Title: "Tax Planning", Content: "Current tax services."},
	}
	chunks := []*contract.RetrievedChunk{
		chunk("Roth Guide", "library content"),
	}

	block := ContextBlock(pages, chunks)

	assert.Equal(t, "[Tax Planning]\nCurrent tax services.\n\n[Roth Guide]\nlibrary content", block)
}

func TestContextBlockPageTitleFallsBackToURL(t *testing.T) {
	pages := []sitefetch.Page{
		{URL: "https://fiatwm.com/about", Content: "About the firm."},
	}

	block := ContextBlock(pages, nil)

	assert.Equal(t, "[https://fiatwm.com/about]\nAbout the firm.", block)
}

func TestContextBlockFormatting(t *testing.T) {
	chunks := []*contract.RetrievedChunk{
		chunk("Doc A", "content a"),
		chunk("", "content b"),
	}

	block := ContextBlock(nil, chunks)

	assert.Equal(t, "[Doc A]\ncontent a\n\n[Unknown]\ncontent b", block)
}

func TestContextBlockEmpty(t *testing.T) {
	assert.Equal(t, "", ContextBlock(nil, nil))
}
