package chunker

import (
	"strings"
)

// Chunk is a bounded retrieval unit cut from a document.
type Chunk struct {
	Index      int
	Content    string
	TokenCount int
}

// Config bounds chunk sizes. Tokens are whitespace-delimited words; the
// approximation is deterministic so re-chunking a corpus stays stable.
type Config struct {
	MinTokens int
	MaxTokens int
}

func DefaultConfig() Config {
	return Config{
		MinTokens: 300,
		MaxTokens: 800,
	}
}

// CountTokens returns the token count used throughout ingestion.
func CountTokens(text string) int {
	return len(strings.Fields(text))
}

// Split cuts a document into ordered, non-overlapping chunks whose token
// counts fall within [MinTokens, MaxTokens]. Splitting happens at paragraph
// boundaries; a single paragraph longer than MaxTokens is split at sentence
// boundaries, never mid-word. When paragraph sizes leave a chunk stuck below
// the minimum, the chunk borrows the leading sentences of the next paragraph
// so every non-final chunk stays within bounds. The final chunk may fall
// below MinTokens when the remaining text is too short. An empty document
// yields no chunks.
func Split(content string, cfg Config) []Chunk {
	if cfg.MinTokens <= 0 || cfg.MaxTokens <= 0 || cfg.MaxTokens < cfg.MinTokens {
		cfg = DefaultConfig()
	}

	var pieces []string
	for _, para := range strings.Split(content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if CountTokens(para) > cfg.MaxTokens {
			pieces = append(pieces, splitLongParagraph(para, cfg.MaxTokens)...)
		} else {
			pieces = append(pieces, para)
		}
	}

	var chunks []Chunk
	var current strings.Builder
	currentTokens := 0

	flush := func() {
		if currentTokens == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Index:      len(chunks),
			Content:    current.String(),
			TokenCount: currentTokens,
		})
		current.Reset()
		currentTokens = 0
	}

	for _, piece := range pieces {
		tokens := CountTokens(piece)

		if currentTokens > 0 && currentTokens+tokens > cfg.MaxTokens {
			if currentTokens >= cfg.MinTokens {
				flush()
			} else {
				// The running chunk has not reached the minimum yet, so
				// flushing would emit an undersized chunk and appending
				// would blow past the cap. Borrow from the incoming piece
				// to fill the chunk, then carry the remainder forward.
				head, tail := borrowPiece(piece, cfg.MinTokens-currentTokens, cfg.MaxTokens-currentTokens)
				if head != "" {
					current.WriteString("\n\n")
					current.WriteString(head)
					currentTokens += CountTokens(head)
				}
				flush()
				piece = tail
				tokens = CountTokens(piece)
				if tokens == 0 {
					continue
				}
			}
		}

		if currentTokens > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(piece)
		currentTokens += tokens

		if currentTokens >= cfg.MaxTokens {
			flush()
		}
	}
	flush()

	return chunks
}

// borrowPiece takes a prefix of piece worth at least minNeed tokens without
// exceeding budget. Whole sentences are preferred; words top the prefix off
// only when the sentences that fit cannot reach minNeed on their own.
func borrowPiece(piece string, minNeed, budget int) (string, string) {
	sentences := splitSentences(piece)

	var taken []string
	used := 0
	idx := 0
	for _, sentence := range sentences {
		tokens := CountTokens(sentence)
		if used+tokens > budget {
			break
		}
		taken = append(taken, sentence)
		used += tokens
		idx++
	}

	rest := strings.Join(sentences[idx:], " ")
	if used < minNeed {
		words := strings.Fields(rest)
		fill := budget - used
		if fill > len(words) {
			fill = len(words)
		}
		taken = append(taken, words[:fill]...)
		rest = strings.Join(words[fill:], " ")
	}

	return strings.Join(taken, " "), rest
}

// splitLongParagraph breaks an oversized paragraph at sentence boundaries so
// that each piece stays within maxTokens. A single sentence longer than the
// cap is kept whole rather than cut mid-word.
func splitLongParagraph(para string, maxTokens int) []string {
	sentences := splitSentences(para)

	var pieces []string
	var current strings.Builder
	currentTokens := 0

	for _, sentence := range sentences {
		tokens := CountTokens(sentence)
		if currentTokens > 0 && currentTokens+tokens > maxTokens {
			pieces = append(pieces, current.String())
			current.Reset()
			currentTokens = 0
		}
		if currentTokens > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
		currentTokens += tokens
	}
	if currentTokens > 0 {
		pieces = append(pieces, current.String())
	}

	return pieces
}

// splitSentences splits on terminal punctuation followed by whitespace.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])
		if isSentenceEnd(runes[i]) && i+1 < len(runes) && isSpace(runes[i+1]) {
			s := strings.TrimSpace(current.String())
			if s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t'
}
