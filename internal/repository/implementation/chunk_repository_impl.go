package implementation

import (
	"context"
	"errors"
	"time"

	"advisor-chat-be/internal/entity"
	"advisor-chat-be/internal/mapper"
	"advisor-chat-be/internal/model"
	"advisor-chat-be/internal/repository/contract"
	"advisor-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMapper
}

func NewChunkRepository(db *gorm.DB) contract.ChunkRepository {
	return &ChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkMapper(),
	}
}

func (r *ChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChunkRepositoryImpl) Create(ctx context.Context, chunk *entity.Chunk) error {
	m := r.mapper.ToModel(chunk)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chunk = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := r.mapper.ToModels(chunks)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ChunkRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.Chunk{}).Error
}

func (r *ChunkRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chunk, error) {
	var m model.Chunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error) {
	var models []*model.Chunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Chunk{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ChunkRepositoryImpl) UpdateEmbedding(ctx context.Context, chunkId uuid.UUID, embedding []float32) error {
	return r.db.WithContext(ctx).
		Model(&model.Chunk{}).
		Where("id = ?", chunkId).
		Update("embedding", pgvector.NewVector(embedding)).Error
}

// chunkRow carries the joined document fields the retriever needs for
// citations, plus the cosine similarity when ordering by vector.
type chunkRow struct {
	model.Chunk
	DocumentTitle string
	SourceURL     string
	PublishedDate *time.Time
	Similarity    float64
}

func (r *ChunkRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*contract.RetrievedChunk, error) {
	if limit <= 0 {
		limit = 4
	}

	queryVector := pgvector.NewVector(embedding)
	var rows []chunkRow

	// Cosine distance in pgvector is 1 - cosine_similarity; only approved
	// documents are visible to retrieval. created_at breaks distance ties.
	err := r.db.WithContext(ctx).
		Table("chunks").
		Select("chunks.*, documents.title as document_title, documents.source_url, documents.published_date, 1 - (chunks.embedding <=> ?) as similarity", queryVector).
		Joins("JOIN documents ON documents.id = chunks.document_id").
		Where("documents.status = ?", entity.DocumentStatusApproved).
		Where("chunks.embedding IS NOT NULL").
		Order(gorm.Expr("chunks.embedding <=> ?", queryVector)).
		Order("chunks.created_at ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	retrieved := make([]*contract.RetrievedChunk, len(rows))
	for i, row := range rows {
		c := row.Chunk
		retrieved[i] = &contract.RetrievedChunk{
			Chunk:         r.mapper.ToEntity(&c),
			Score:         row.Similarity,
			DocumentTitle: row.DocumentTitle,
			SourceURL:     row.SourceURL,
			PublishedDate: row.PublishedDate,
		}
	}
	return retrieved, nil
}

func (r *ChunkRepositoryImpl) FindApprovedWithDocs(ctx context.Context) ([]*contract.RetrievedChunk, error) {
	var rows []chunkRow

	err := r.db.WithContext(ctx).
		Table("chunks").
		Select("chunks.*, documents.title as document_title, documents.source_url, documents.published_date").
		Joins("JOIN documents ON documents.id = chunks.document_id").
		Where("documents.status = ?", entity.DocumentStatusApproved).
		Order("chunks.created_at ASC").
		Order("chunks.chunk_index ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	retrieved := make([]*contract.RetrievedChunk, len(rows))
	for i, row := range rows {
		c := row.Chunk
		retrieved[i] = &contract.RetrievedChunk{
			Chunk:         r.mapper.ToEntity(&c),
			DocumentTitle: row.DocumentTitle,
			SourceURL:     row.SourceURL,
			PublishedDate: row.PublishedDate,
		}
	}
	return retrieved, nil
}
