package dto

import "github.com/google/uuid"

// PublishEmbedDocumentMessage asks the embedding consumer to fill vectors
// for every chunk of a freshly ingested document.
type PublishEmbedDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
