package contract

import (
	"context"

	"advisor-chat-be/internal/entity"
	"advisor-chat-be/internal/repository/specification"
)

// ConsentEventRepository is append-only. There is no update or delete.
type ConsentEventRepository interface {
	Create(ctx context.Context, event *entity.ConsentEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConsentEvent, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
