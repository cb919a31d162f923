package dto

import (
	"time"

	"github.com/google/uuid"
)

type IngestDocumentRequest struct {
	Title         string                 `json:"title" validate:"required,max=500"`
	Content       string                 `json:"content" validate:"required"`
	SourceURL     string                 `json:"source_url,omitempty" validate:"omitempty,url,max=1000"`
	SourceType    string                 `json:"source_type,omitempty" validate:"max=100"`
	PublishedDate *time.Time             `json:"published_date,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

type IngestDocumentResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	Status     string    `json:"status"`
	ChunkCount int       `json:"chunk_count"`
	TokenCount int       `json:"token_count"`
}

type ApproveDocumentResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	Status     string    `json:"status"`
}

type GetDocumentResponse struct {
	Id            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	SourceURL     string     `json:"source_url,omitempty"`
	SourceType    string     `json:"source_type,omitempty"`
	Status        string     `json:"status"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	ChunkCount    int64      `json:"chunk_count"`
	CreatedAt     time.Time  `json:"created_at"`
}
