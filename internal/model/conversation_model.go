package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Conversation struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionKey     string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	UserId         string     `gorm:"type:varchar(100);index"`
	Title          string     `gorm:"type:text"`
	LeadId         *uuid.UUID `gorm:"type:uuid;index"`
	GateState      string     `gorm:"type:varchar(20);not null;default:'open'"`
	PendingMessage string     `gorm:"type:text"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt      time.Time         `gorm:"autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt    `gorm:"index"`

	Lead *Lead `gorm:"foreignKey:LeadId;references:Id"`
}

func (Conversation) TableName() string {
	return "conversations"
}
