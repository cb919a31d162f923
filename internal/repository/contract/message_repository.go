package contract

import (
	"context"

	"advisor-chat-be/internal/entity"
	"advisor-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CreateCitations(ctx context.Context, citations []*entity.MessageCitation) error
	// FindCitationsByMessageIds loads citations with their document fields
	// for transcript reads.
	FindCitationsByMessageIds(ctx context.Context, messageIds []uuid.UUID) ([]*entity.MessageCitation, error)
}
