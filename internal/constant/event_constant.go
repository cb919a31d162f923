package constant

// NATS subjects and durable consumer names for background workers.
// Publishers prefix subjects with "events." (see pkg/nats).
const (
	SubjectLeadCaptured     = "events.LEAD_CAPTURED"
	SubjectDocumentIngested = "events.DOCUMENT_INGESTED"
	DurableLeadCRMSync      = "lead-crm-sync"
)
