package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chunk is an immutable retrieval unit cut from a document at ingestion.
// Re-ingesting a document replaces its whole chunk set.
type Chunk struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	ChunkIndex int
	Content    string
	TokenCount int
	Embedding  []float32 // nil in keyword-fallback mode
	CreatedAt  time.Time
}
