package contract

import (
	"context"

	"advisor-chat-be/internal/entity"
	"advisor-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	Update(ctx context.Context, document *entity.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// FindBySourceURL locates an existing document for re-ingestion.
	FindBySourceURL(ctx context.Context, sourceURL string) (*entity.Document, error)
}
