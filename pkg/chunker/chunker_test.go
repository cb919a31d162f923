package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func paragraph(words int, seed string) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = fmt.Sprintf("%s%d", seed, i)
	}
	return strings.Join(parts, " ")
}

func TestSplitEmptyDocument(t *testing.T) {
	assert.Empty(t, Split("", DefaultConfig()))
	assert.Empty(t, Split("   \n\n  \n", DefaultConfig()))
}

func TestSplitShortDocumentSingleChunk(t *testing.T) {
	doc := paragraph(50, "w")
	chunks := Split(doc, DefaultConfig())

	assert.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, 50, chunks[0].TokenCount)
}

func TestSplitTokenBounds(t *testing.T) {
	var paras []string
	for i := 0; i < 20; i++ {
		paras = append(paras, paragraph(150, fmt.Sprintf("p%d_", i)))
	}
	doc := strings.Join(paras, "\n\n")

	cfg := DefaultConfig()
	chunks := Split(doc, cfg)
	assert.NotEmpty(t, chunks)

	// All chunks except possibly the last stay within bounds.
	for i, c := range chunks {
		assert.LessOrEqual(t, c.TokenCount, cfg.MaxTokens, "chunk %d too large", i)
		if i < len(chunks)-1 {
			assert.GreaterOrEqual(t, c.TokenCount, cfg.MinTokens, "chunk %d too small", i)
		}
	}
}

func TestSplitTokenBoundsUnevenParagraphs(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		paras []string
	}{
		{"small then near-max", []string{paragraph(250, "a"), paragraph(799, "b")}},
		{"tiny then max repeatedly", []string{
			paragraph(40, "a"), paragraph(800, "b"),
			paragraph(40, "c"), paragraph(800, "d"),
		}},
		{"alternating sizes", []string{
			paragraph(100, "a"), paragraph(700, "b"), paragraph(50, "c"),
			paragraph(650, "d"), paragraph(299, "e"), paragraph(500, "f"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := strings.Join(tt.paras, "\n\n")
			chunks := Split(doc, cfg)
			assert.NotEmpty(t, chunks)

			for i, c := range chunks {
				assert.LessOrEqual(t, c.TokenCount, cfg.MaxTokens, "chunk %d too large", i)
				if i < len(chunks)-1 {
					assert.GreaterOrEqual(t, c.TokenCount, cfg.MinTokens, "chunk %d too small", i)
				}
			}

			// Borrowing across paragraphs must not drop or reorder text.
			var rebuilt []string
			for _, c := range chunks {
				rebuilt = append(rebuilt, c.Content)
			}
			assert.Equal(t, strings.Fields(doc), strings.Fields(strings.Join(rebuilt, " ")))
		})
	}
}

func TestSplitBorrowsAtSentenceBoundaries(t *testing.T) {
	// A short opening paragraph followed by one made of sentences: the first
	// chunk should absorb whole sentences until it fits the bounds.
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString(paragraph(19, fmt.Sprintf("s%d_", i)))
		sb.WriteString(" end. ")
	}
	doc := paragraph(250, "intro") + "\n\n" + strings.TrimSpace(sb.String())

	cfg := DefaultConfig()
	chunks := Split(doc, cfg)
	assert.Greater(t, len(chunks), 1)

	assert.GreaterOrEqual(t, chunks[0].TokenCount, cfg.MinTokens)
	assert.LessOrEqual(t, chunks[0].TokenCount, cfg.MaxTokens)
	assert.True(t, strings.HasSuffix(chunks[0].Content, "end."),
		"borrowed text should stop at a sentence boundary")
}

func TestSplitRoundTrip(t *testing.T) {
	var paras []string
	for i := 0; i < 12; i++ {
		paras = append(paras, paragraph(120, fmt.Sprintf("rt%d_", i)))
	}
	doc := strings.Join(paras, "\n\n")

	chunks := Split(doc, DefaultConfig())

	var rebuilt []string
	for _, c := range chunks {
		rebuilt = append(rebuilt, c.Content)
	}
	// Concatenated chunk text reconstructs the document modulo whitespace.
	assert.Equal(t, strings.Fields(doc), strings.Fields(strings.Join(rebuilt, " ")))
}

func TestSplitOrdinalIndexes(t *testing.T) {
	var paras []string
	for i := 0; i < 10; i++ {
		paras = append(paras, paragraph(200, fmt.Sprintf("ord%d_", i)))
	}
	chunks := Split(strings.Join(paras, "\n\n"), DefaultConfig())

	for i, c := range chunks {
		assert.Equal(t, i, c.Index)
	}
}

func TestSplitLongParagraphAtSentenceBoundaries(t *testing.T) {
	// One paragraph of 100 sentences, 20 words each: 2000 tokens, no blank lines.
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString(paragraph(19, fmt.Sprintf("s%d_", i)))
		sb.WriteString(" end. ")
	}
	doc := strings.TrimSpace(sb.String())

	cfg := DefaultConfig()
	chunks := Split(doc, cfg)
	assert.Greater(t, len(chunks), 1)

	for _, c := range chunks {
		assert.LessOrEqual(t, c.TokenCount, cfg.MaxTokens)
		// Sentence-boundary splits: every chunk ends with terminal punctuation.
		assert.True(t, strings.HasSuffix(c.Content, "."), "chunk should end at a sentence boundary")
	}
}

func TestSplitDeterministic(t *testing.T) {
	doc := strings.Join([]string{
		paragraph(350, "a"),
		paragraph(350, "b"),
		paragraph(350, "c"),
	}, "\n\n")

	first := Split(doc, DefaultConfig())
	second := Split(doc, DefaultConfig())
	assert.Equal(t, first, second)
}

func TestCountTokens(t *testing.T) {
	assert.Equal(t, 0, CountTokens(""))
	assert.Equal(t, 3, CountTokens("one two three"))
	assert.Equal(t, 3, CountTokens("  one\n two\tthree  "))
}
