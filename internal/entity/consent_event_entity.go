package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConsentEvent is an append-only audit record. Exactly one is written per
// lead-capture submission; it is never mutated or deleted.
type ConsentEvent struct {
	Id                uuid.UUID
	LeadId            uuid.UUID
	ConversationId    *uuid.UUID
	EventType         string
	IPAddress         string
	UserAgent         string
	PageURL           string
	DisclosureText    string
	DisclosureVersion string
	Metadata          map[string]interface{}
	CreatedAt         time.Time
}
