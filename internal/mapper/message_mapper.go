package mapper

import (
	"advisor-chat-be/internal/entity"
	"advisor-chat-be/internal/model"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	return &entity.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           msg.Role,
		Content:        msg.Content,
		Metadata:       msg.Metadata,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	return &model.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           msg.Role,
		Content:        msg.Content,
		Metadata:       msg.Metadata,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *MessageMapper) ToEntities(msgs []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}

func (m *MessageMapper) CitationToEntity(c *model.MessageCitation) *entity.MessageCitation {
	if c == nil {
		return nil
	}

	e := &entity.MessageCitation{
		Id:         c.Id,
		MessageId:  c.MessageId,
		ChunkId:    c.ChunkId,
		DocumentId: c.DocumentId,
		CreatedAt:  c.CreatedAt,
	}
	if c.Document != nil {
		e.Title = c.Document.Title
		e.SourceURL = c.Document.SourceURL
		e.PublishedDate = c.Document.PublishedDate
	}
	return e
}

func (m *MessageMapper) CitationToModel(c *entity.MessageCitation) *model.MessageCitation {
	if c == nil {
		return nil
	}

	return &model.MessageCitation{
		Id:         c.Id,
		MessageId:  c.MessageId,
		ChunkId:    c.ChunkId,
		DocumentId: c.DocumentId,
		CreatedAt:  c.CreatedAt,
	}
}
