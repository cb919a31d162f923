package retriever

import (
	"context"

	"advisor-chat-be/internal/repository/contract"
)

// ChunkSource is the slice of the chunk repository retrieval needs.
type ChunkSource interface {
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*contract.RetrievedChunk, error)
	FindApprovedWithDocs(ctx context.Context) ([]*contract.RetrievedChunk, error)
}

// Retriever returns the chunks most relevant to a query, best first.
// Only chunks of approved documents are ever returned.
type Retriever interface {
	Retrieve(ctx context.Context, query string, limit int) ([]*contract.RetrievedChunk, error)
}
