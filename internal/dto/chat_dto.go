package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	SessionKey string                 `json:"session_id" validate:"required,max=100"`
	Message    string                 `json:"message" validate:"required"`
	UserId     string                 `json:"user_id,omitempty" validate:"max=100"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

type CitationDTO struct {
	ChunkId       uuid.UUID  `json:"chunk_id"`
	DocumentId    uuid.UUID  `json:"document_id"`
	Title         string     `json:"title"`
	SourceURL     string     `json:"source_url,omitempty"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
}

type SendChatResponse struct {
	SessionKey   string        `json:"session_id"`
	Response     string        `json:"response"`
	ShowLeadGate bool          `json:"show_lead_gate"`
	Citations    []CitationDTO `json:"citations"`
}

type CreateSessionRequest struct {
	UserId   string                 `json:"user_id,omitempty" validate:"max=100"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type CreateSessionResponse struct {
	SessionKey string    `json:"session_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type GetSessionResponse struct {
	SessionKey string     `json:"session_id"`
	Title      string     `json:"title"`
	GateState  string     `json:"gate_state"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

type GetChatHistoryResponse struct {
	Id        uuid.UUID     `json:"id"`
	Role      string        `json:"role"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	Citations []CitationDTO `json:"citations,omitempty"`
}
