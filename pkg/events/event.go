package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "LEAD_CAPTURED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by publishers and the
// subscriber when reconstructing events off the wire.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewLeadCaptured is emitted after a lead is persisted and routed, so CRM
// and notification consumers can react without coupling to the web layer.
func NewLeadCaptured(leadId, email, bucket, meetingType, bookingURL string) Event {
	return BaseEvent{
		Type: "LEAD_CAPTURED",
		Data: map[string]interface{}{
			"lead_id":      leadId,
			"email":        email,
			"bucket":       bucket,
			"meeting_type": meetingType,
			"booking_url":  bookingURL,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentIngested is emitted when a document finishes chunking.
func NewDocumentIngested(documentId, title string, chunkCount int) Event {
	return BaseEvent{
		Type: "DOCUMENT_INGESTED",
		Data: map[string]interface{}{
			"document_id": documentId,
			"title":       title,
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now(),
	}
}
