package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByStatus filters documents by lifecycle status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByDocumentID filters chunks by their parent document
type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

// ByChunkIndexOrder orders chunks by their ordinal position within a document
type ByChunkIndexOrder struct{}

func (s ByChunkIndexOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("chunk_index ASC")
}
