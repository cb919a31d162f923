package implementation

import (
	"context"

	"advisor-chat-be/internal/entity"
	"advisor-chat-be/internal/mapper"
	"advisor-chat-be/internal/model"
	"advisor-chat-be/internal/repository/contract"
	"advisor-chat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ConsentEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConsentEventMapper
}

func NewConsentEventRepository(db *gorm.DB) contract.ConsentEventRepository {
	return &ConsentEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewConsentEventMapper(),
	}
}

func (r *ConsentEventRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConsentEventRepositoryImpl) Create(ctx context.Context, event *entity.ConsentEvent) error {
	m := r.mapper.ToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConsentEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConsentEvent, error) {
	var models []*model.ConsentEvent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ConsentEvent, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ConsentEventRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ConsentEvent{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
