package embedding

import "context"

// Task types hint providers about the embedding's purpose.
const (
	TaskDocument = "retrieval_document"
	TaskQuery    = "retrieval_query"
)

// EmbeddingProvider defines the interface for generating text embeddings.
// A nil provider means the system runs in keyword-fallback mode.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error)
}

type EmbeddingResponse struct {
	Values []float32
}
