package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document lifecycle: draft -> approved -> archived. Only approved
// documents are visible to retrieval.
const (
	DocumentStatusDraft    = "draft"
	DocumentStatusApproved = "approved"
	DocumentStatusArchived = "archived"
)

type Document struct {
	Id            uuid.UUID
	Title         string
	Content       string
	SourceURL     string
	SourceType    string
	Status        string
	PublishedDate *time.Time
	Metadata      map[string]interface{}
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
