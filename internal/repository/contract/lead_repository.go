package contract

import (
	"context"

	"advisor-chat-be/internal/entity"
	"advisor-chat-be/internal/repository/specification"
)

type LeadRepository interface {
	// Upsert inserts the lead or, when the email already exists, updates the
	// contact and routing fields of the existing record.
	Upsert(ctx context.Context, lead *entity.Lead) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lead, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lead, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
