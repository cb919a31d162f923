package specification

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByEmail filters leads by email, case-insensitively
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(email) = ?", strings.ToLower(s.Email))
}

// ByLeadID filters consent events by lead
type ByLeadID struct {
	LeadID uuid.UUID
}

func (s ByLeadID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lead_id = ?", s.LeadID)
}

// ByBucket filters leads by routing bucket
type ByBucket struct {
	Bucket string
}

func (s ByBucket) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("bucket = ?", s.Bucket)
}
