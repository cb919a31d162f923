package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateLeadRequest struct {
	SessionKey string `json:"session_id" validate:"required,max=100"`
	FirstName  string `json:"first_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Phone      string `json:"phone,omitempty" validate:"max=50"`
	IPAddress  string `json:"ip_address,omitempty" validate:"max=50"`
	UserAgent  string `json:"user_agent,omitempty" validate:"max=500"`
	PageURL    string `json:"page_url,omitempty" validate:"max=1000"`
}

type CreateLeadResponse struct {
	LeadId      uuid.UUID `json:"lead_id"`
	Bucket      string    `json:"bucket"`
	MeetingType string    `json:"meeting_type"`
	BookingURL  string    `json:"booking_url"`
	// Reply answers the message that was held back by the lead gate.
	Reply     string        `json:"reply,omitempty"`
	Citations []CitationDTO `json:"citations,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
