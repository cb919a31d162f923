package entity

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id         uuid.UUID
	SessionKey string
	UserId     string
	Title      string
	LeadId     *uuid.UUID
	GateState  string // see pkg/gate
	// PendingMessage holds the user message intercepted by the lead gate.
	// It is answered after the lead form is submitted.
	PendingMessage string
	Metadata       map[string]interface{}
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
