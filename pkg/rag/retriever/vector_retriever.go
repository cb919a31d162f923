package retriever

import (
	"context"

	"advisor-chat-be/internal/repository/contract"
	"advisor-chat-be/pkg/embedding"

	"go.uber.org/zap"
)

// VectorRetriever embeds the query and searches pgvector by cosine distance.
// When the embedding call fails it degrades to keyword retrieval rather than
// failing the chat turn.
type VectorRetriever struct {
	source   ChunkSource
	embedder embedding.EmbeddingProvider
	fallback *KeywordRetriever
	logger   *zap.Logger
}

func NewVectorRetriever(source ChunkSource, embedder embedding.EmbeddingProvider, fallback *KeywordRetriever, logger *zap.Logger) *VectorRetriever {
	return &VectorRetriever{
		source:   source,
		embedder: embedder,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *VectorRetriever) Retrieve(ctx context.Context, query string, limit int) ([]*contract.RetrievedChunk, error) {
	if limit <= 0 {
		limit = 3
	}

	resp, err := r.embedder.Generate(ctx, query, embedding.TaskQuery)
	if err != nil || resp == nil || len(resp.Values) == 0 {
		r.logger.Warn("query embedding failed, falling back to keyword retrieval", zap.Error(err))
		return r.fallback.Retrieve(ctx, query, limit)
	}

	return r.source.SearchSimilar(ctx, resp.Values, limit)
}
