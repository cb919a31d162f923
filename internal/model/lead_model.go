package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Lead struct {
	Id          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName   string            `gorm:"type:varchar(100);not null"`
	Email       string            `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone       string            `gorm:"type:varchar(50)"`
	Bucket      string            `gorm:"type:varchar(50)"`
	MeetingType string            `gorm:"type:varchar(50)"`
	BookingURL  string            `gorm:"type:varchar(500)"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt   time.Time         `gorm:"autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime"`
}

func (Lead) TableName() string {
	return "leads"
}
