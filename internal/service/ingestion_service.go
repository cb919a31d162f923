package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"advisor-chat-be/internal/dto"
	"advisor-chat-be/internal/entity"
	"advisor-chat-be/internal/pkg/logger"
	"advisor-chat-be/internal/repository/specification"
	"advisor-chat-be/internal/repository/unitofwork"
	"advisor-chat-be/pkg/chunker"
	"advisor-chat-be/pkg/events"
	pkgnats "advisor-chat-be/pkg/nats"

	"github.com/google/uuid"
)

type IIngestionService interface {
	Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error)
	Approve(ctx context.Context, documentId uuid.UUID) (*dto.ApproveDocumentResponse, error)
	ListDocuments(ctx context.Context) ([]*dto.GetDocumentResponse, error)
}

type ingestionService struct {
	uowFactory       unitofwork.RepositoryFactory
	chunkerConfig    chunker.Config
	publisherService IPublisherService // nil when no embedding provider is configured
	eventPublisher   *pkgnats.Publisher
	log              logger.ILogger
	// onApprove lets the keyword retriever drop its cached corpus.
	onApprove func()
}

func NewIngestionService(
	uowFactory unitofwork.RepositoryFactory,
	chunkerConfig chunker.Config,
	publisherService IPublisherService,
	eventPublisher *pkgnats.Publisher,
	log logger.ILogger,
	onApprove func(),
) IIngestionService {
	return &ingestionService{
		uowFactory:       uowFactory,
		chunkerConfig:    chunkerConfig,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
		onApprove:        onApprove,
	}
}

// Ingest stores a document as draft and cuts it into retrieval chunks.
// Re-ingesting the same source URL replaces the document's chunk set and
// resets it to draft.
func (s *ingestionService) Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var doc *entity.Document
	if req.SourceURL != "" {
		existing, err := uow.DocumentRepository().FindBySourceURL(ctx, req.SourceURL)
		if err != nil {
			return nil, err
		}
		doc = existing
	}

	chunks := chunker.Split(req.Content, s.chunkerConfig)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	if doc == nil {
		doc = &entity.Document{
			Id:            uuid.New(),
			Title:         req.Title,
			Content:       req.Content,
			SourceURL:     req.SourceURL,
			SourceType:    req.SourceType,
			Status:        entity.DocumentStatusDraft,
			PublishedDate: req.PublishedDate,
			Metadata:      req.Metadata,
			CreatedAt:     now,
		}
		if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
			return nil, err
		}
	} else {
		doc.Title = req.Title
		doc.Content = req.Content
		doc.SourceType = req.SourceType
		doc.Status = entity.DocumentStatusDraft
		doc.PublishedDate = req.PublishedDate
		doc.Metadata = req.Metadata
		if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
			return nil, err
		}
		if err := uow.ChunkRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
			return nil, err
		}
	}

	chunkEntities := make([]*entity.Chunk, len(chunks))
	totalTokens := 0
	for i, c := range chunks {
		chunkEntities[i] = &entity.Chunk{
			Id:         uuid.New(),
			DocumentId: doc.Id,
			ChunkIndex: c.Index,
			Content:    c.Content,
			TokenCount: c.TokenCount,
			CreatedAt:  now,
		}
		totalTokens += c.TokenCount
	}
	if err := uow.ChunkRepository().CreateBulk(ctx, chunkEntities); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Hand the document to the async embedding pipeline, if one is running.
	if s.publisherService != nil {
		payload, err := json.Marshal(dto.PublishEmbedDocumentMessage{DocumentId: doc.Id})
		if err != nil {
			return nil, err
		}
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			return nil, err
		}
	}

	if s.eventPublisher != nil {
		evt := events.NewDocumentIngested(doc.Id.String(), doc.Title, len(chunkEntities))
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("ingestion", "failed to publish DOCUMENT_INGESTED event", map[string]interface{}{"error": err.Error()})
		}
	}

	s.log.Info("ingestion", "document ingested", map[string]interface{}{
		"document_id": doc.Id,
		"chunks":      len(chunkEntities),
		"tokens":      totalTokens,
	})

	return &dto.IngestDocumentResponse{
		DocumentId: doc.Id,
		Status:     doc.Status,
		ChunkCount: len(chunkEntities),
		TokenCount: totalTokens,
	}, nil
}

// Approve makes a draft document visible to retrieval.
func (s *ingestionService) Approve(ctx context.Context, documentId uuid.UUID) (*dto.ApproveDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &dto.NotFoundError{Resource: fmt.Sprintf("document %s", documentId)}
	}

	if doc.Status != entity.DocumentStatusApproved {
		doc.Status = entity.DocumentStatusApproved
		if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
			return nil, err
		}
	}

	if s.onApprove != nil {
		s.onApprove()
	}

	s.log.Info("ingestion", "document approved", map[string]interface{}{"document_id": doc.Id})

	return &dto.ApproveDocumentResponse{
		DocumentId: doc.Id,
		Status:     doc.Status,
	}, nil
}

func (s *ingestionService) ListDocuments(ctx context.Context) ([]*dto.GetDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetDocumentResponse, 0, len(docs))
	for _, d := range docs {
		chunkCount, err := uow.ChunkRepository().Count(ctx, specification.ByDocumentID{DocumentID: d.Id})
		if err != nil {
			return nil, err
		}
		response = append(response, &dto.GetDocumentResponse{
			Id:            d.Id,
			Title:         d.Title,
			SourceURL:     d.SourceURL,
			SourceType:    d.SourceType,
			Status:        d.Status,
			PublishedDate: d.PublishedDate,
			ChunkCount:    chunkCount,
			CreatedAt:     d.CreatedAt,
		})
	}
	return response, nil
}
