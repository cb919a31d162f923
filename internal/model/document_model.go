package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Document struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title         string    `gorm:"type:varchar(500);not null"`
	Content       string    `gorm:"type:text;not null"`
	SourceURL     string    `gorm:"type:varchar(1000)"`
	SourceType    string    `gorm:"type:varchar(100)"`
	Status        string    `gorm:"type:varchar(20);not null;default:'draft';index"`
	PublishedDate *time.Time
	Metadata      datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt     time.Time         `gorm:"autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}
