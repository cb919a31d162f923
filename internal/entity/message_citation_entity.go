package entity

import (
	"time"

	"github.com/google/uuid"
)

// MessageCitation links an assistant message to a chunk it referenced.
type MessageCitation struct {
	Id         uuid.UUID
	MessageId  uuid.UUID
	ChunkId    uuid.UUID
	DocumentId uuid.UUID
	CreatedAt  time.Time

	// Denormalized document fields, populated on read.
	Title         string
	SourceURL     string
	PublishedDate *time.Time
}
