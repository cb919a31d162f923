package entity

import (
	"time"

	"github.com/google/uuid"
)

// Lead is upserted by email: concurrent submissions from the same address
// converge on one record, last write wins on contact fields.
type Lead struct {
	Id          uuid.UUID
	FirstName   string
	Email       string
	Phone       string
	Bucket      string
	MeetingType string
	BookingURL  string
	Metadata    map[string]interface{}
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
