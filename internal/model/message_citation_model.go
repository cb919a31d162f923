package model

import (
	"time"

	"github.com/google/uuid"
)

type MessageCitation struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MessageId  uuid.UUID `gorm:"type:uuid;not null;index"`
	ChunkId    uuid.UUID `gorm:"type:uuid;not null;index"`
	DocumentId uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`

	Message  *Message  `gorm:"foreignKey:MessageId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Chunk    *Chunk    `gorm:"foreignKey:ChunkId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Document *Document `gorm:"foreignKey:DocumentId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (MessageCitation) TableName() string {
	return "message_citations"
}
