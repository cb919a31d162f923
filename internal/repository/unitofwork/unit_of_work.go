package unitofwork

import (
	"context"

	"advisor-chat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	ChunkRepository() contract.ChunkRepository
	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository
	LeadRepository() contract.LeadRepository
	ConsentEventRepository() contract.ConsentEventRepository
}
