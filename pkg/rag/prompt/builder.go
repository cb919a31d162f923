package prompt

import (
	"fmt"
	"strings"

	"advisor-chat-be/internal/repository/contract"
	"advisor-chat-be/pkg/llm"
	"advisor-chat-be/pkg/sitefetch"
)

// Build assembles the message list sent to the model: the system prompt,
// an optional knowledge-base context block, then the recent history.
// The caller's history must already end with the current user message.
func Build(systemPrompt string, pages []sitefetch.Page, chunks []*contract.RetrievedChunk, history []llm.Message) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: systemPrompt,
	})

	if contextText := ContextBlock(pages, chunks); contextText != "" {
		messages = append(messages, llm.Message{
			Role:    "system",
			Content: "KNOWLEDGE BASE CONTEXT:\n\n" + contextText,
		})
	}

	return append(messages, history...)
}

// ContextBlock renders live site pages and retrieved chunks as
// "[title]\ncontent" paragraphs. Site content comes first so current site
// copy outranks older library material.
func ContextBlock(pages []sitefetch.Page, chunks []*contract.RetrievedChunk) string {
	if len(pages) == 0 && len(chunks) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pages)+len(chunks))
	for _, p := range pages {
		title := p.Title
		if title == "" {
			title = p.URL
		}
		parts = append(parts, fmt.Sprintf("[%s]\n%s", title, p.Content))
	}
	for _, c := range chunks {
		title := c.DocumentTitle
		if title == "" {
			title = "Unknown"
		}
		parts = append(parts, fmt.Sprintf("[%s]\n%s", title, c.Chunk.Content))
	}
	return strings.Join(parts, "\n\n")
}
