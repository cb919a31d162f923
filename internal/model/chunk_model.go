package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Chunk struct {
	Id         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChunkIndex int             `gorm:"not null;default:0"`
	Content    string          `gorm:"type:text;not null"`
	TokenCount int             `gorm:"not null;default:0"`
	Embedding  *pgvector.Vector `gorm:"type:vector(1536)"` // NULL in keyword-fallback mode; text-embedding-3-small dimensions
	CreatedAt  time.Time       `gorm:"autoCreateTime"`

	Document *Document `gorm:"foreignKey:DocumentId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (Chunk) TableName() string {
	return "chunks"
}
