package mapper

import (
	"time"

	"advisor-chat-be/internal/entity"
	"advisor-chat-be/internal/model"
)

type LeadMapper struct{}

func NewLeadMapper() *LeadMapper {
	return &LeadMapper{}
}

func (m *LeadMapper) ToEntity(l *model.Lead) *entity.Lead {
	if l == nil {
		return nil
	}

	var updatedAt *time.Time
	if !l.UpdatedAt.IsZero() {
		t := l.UpdatedAt
		updatedAt = &t
	}

	return &entity.Lead{
		Id:          l.Id,
		FirstName:   l.FirstName,
		Email:       l.Email,
		Phone:       l.Phone,
		Bucket:      l.Bucket,
		MeetingType: l.MeetingType,
		BookingURL:  l.BookingURL,
		Metadata:    l.Metadata,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *LeadMapper) ToModel(l *entity.Lead) *model.Lead {
	if l == nil {
		return nil
	}

	var updatedAt time.Time
	if l.UpdatedAt != nil {
		updatedAt = *l.UpdatedAt
	}

	return &model.Lead{
		Id:          l.Id,
		FirstName:   l.FirstName,
		Email:       l.Email,
		Phone:       l.Phone,
		Bucket:      l.Bucket,
		MeetingType: l.MeetingType,
		BookingURL:  l.BookingURL,
		Metadata:    l.Metadata,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}
