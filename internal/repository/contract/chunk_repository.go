package contract

import (
	"context"
	"time"

	"advisor-chat-be/internal/entity"
	"advisor-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

// RetrievedChunk wraps a chunk with its retrieval score and the document
// fields a citation needs.
type RetrievedChunk struct {
	Chunk         *entity.Chunk
	Score         float64
	DocumentTitle string
	SourceURL     string
	PublishedDate *time.Time
}

type ChunkRepository interface {
	Create(ctx context.Context, chunk *entity.Chunk) error
	CreateBulk(ctx context.Context, chunks []*entity.Chunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// UpdateEmbedding stores the vector computed by the async embedding consumer.
	UpdateEmbedding(ctx context.Context, chunkId uuid.UUID, embedding []float32) error
	// SearchSimilar returns chunks of approved documents ordered by cosine
	// distance to the query vector, insertion order breaking ties.
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*RetrievedChunk, error)
	// FindApprovedWithDocs returns every chunk of every approved document
	// with its citation fields, for in-process keyword scoring.
	FindApprovedWithDocs(ctx context.Context) ([]*RetrievedChunk, error)
}
