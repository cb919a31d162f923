package service

import (
	"context"
	"encoding/json"
	"log"

	"advisor-chat-be/internal/dto"
	"advisor-chat-be/internal/repository/specification"
	"advisor-chat-be/internal/repository/unitofwork"
	"advisor-chat-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService fills chunk embeddings asynchronously so ingestion never
// blocks on the embedding provider. Without a provider it is not started.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal embed message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Embedding chunks for document %s", payload.DocumentId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chunks, err := uow.ChunkRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: payload.DocumentId},
		specification.ByChunkIndexOrder{},
	)
	if err != nil {
		log.Printf("[ERROR] Failed to load chunks for document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}
	if len(chunks) == 0 {
		log.Printf("[WARN] Document %s has no chunks, nothing to embed", payload.DocumentId)
		msg.Ack()
		return
	}

	// Embed outside the transaction; provider calls are slow.
	vectors := make([][]float32, len(chunks))
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(ctx, chunk.Content, embedding.TaskDocument)
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d of document %s: %v", chunk.ChunkIndex, payload.DocumentId, err)
			msg.Nack()
			return
		}
		vectors[i] = res.Values
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	for i, chunk := range chunks {
		if err := uow.ChunkRepository().UpdateEmbedding(ctx, chunk.Id, vectors[i]); err != nil {
			log.Printf("[ERROR] Failed to store embedding for chunk %s: %v", chunk.Id, err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit embeddings: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Embedded %d chunks for document %s", len(chunks), payload.DocumentId)
	msg.Ack()
}
