package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ConsentEvent struct {
	Id                uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeadId            uuid.UUID         `gorm:"type:uuid;not null;index"`
	ConversationId    *uuid.UUID        `gorm:"type:uuid;index"`
	EventType         string            `gorm:"type:varchar(50);not null"`
	IPAddress         string            `gorm:"type:varchar(50)"`
	UserAgent         string            `gorm:"type:varchar(500)"`
	PageURL           string            `gorm:"type:varchar(1000)"`
	DisclosureText    string            `gorm:"type:text"`
	DisclosureVersion string            `gorm:"type:varchar(50)"`
	Metadata          datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt         time.Time         `gorm:"autoCreateTime"`

	Lead *Lead `gorm:"foreignKey:LeadId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (ConsentEvent) TableName() string {
	return "consent_events"
}
