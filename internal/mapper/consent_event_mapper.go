package mapper

import (
	"advisor-chat-be/internal/entity"
	"advisor-chat-be/internal/model"
)

type ConsentEventMapper struct{}

func NewConsentEventMapper() *ConsentEventMapper {
	return &ConsentEventMapper{}
}

func (m *ConsentEventMapper) ToEntity(e *model.ConsentEvent) *entity.ConsentEvent {
	if e == nil {
		return nil
	}

	return &entity.ConsentEvent{
		Id:                e.Id,
		LeadId:            e.LeadId,
		ConversationId:    e.ConversationId,
		EventType:         e.EventType,
		IPAddress:         e.IPAddress,
		UserAgent:         e.UserAgent,
		PageURL:           e.PageURL,
		DisclosureText:    e.DisclosureText,
		DisclosureVersion: e.DisclosureVersion,
		Metadata:          e.Metadata,
		CreatedAt:         e.CreatedAt,
	}
}

func (m *ConsentEventMapper) ToModel(e *entity.ConsentEvent) *model.ConsentEvent {
	if e == nil {
		return nil
	}

	return &model.ConsentEvent{
		Id:                e.Id,
		LeadId:            e.LeadId,
		ConversationId:    e.ConversationId,
		EventType:         e.EventType,
		IPAddress:         e.IPAddress,
		UserAgent:         e.UserAgent,
		PageURL:           e.PageURL,
		DisclosureText:    e.DisclosureText,
		DisclosureVersion: e.DisclosureVersion,
		Metadata:          e.Metadata,
		CreatedAt:         e.CreatedAt,
	}
}
