package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"advisor-chat-be/internal/entity"
	"advisor-chat-be/internal/repository/specification"
	"advisor-chat-be/internal/repository/unitofwork"
	"advisor-chat-be/pkg/database"
	"advisor-chat-be/pkg/gate"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.DocumentRepository())
	assert.NotNil(t, uow.ChunkRepository())
	assert.NotNil(t, uow.ConversationRepository())
	assert.NotNil(t, uow.LeadRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check Document Repository", func(t *testing.T) {
		count, err := uow.DocumentRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Document count: %d", count)
	})

	t.Run("Check Chunk Repository", func(t *testing.T) {
		count, err := uow.ChunkRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Chunk count: %d", count)
	})

	t.Run("Check Transactional Ingestion", func(t *testing.T) {
		ctx := context.Background()
		txUow := uowFactory.NewUnitOfWork(ctx)
		if err := txUow.Begin(ctx); err != nil {
			t.Fatalf("Failed to begin transaction: %v", err)
		}
		defer txUow.Rollback()

		doc := &entity.Document{
			Title:      "Integration Test Document",
			Content:    "Tax planning content for integration testing.",
			SourceURL:  "https://example.com/integration-" + uuid.New().String(),
			SourceType: "article",
			Status:     entity.DocumentStatusDraft,
		}
		err := txUow.DocumentRepository().Create(ctx, doc)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, doc.Id)

		chunks := []*entity.Chunk{
			{DocumentId: doc.Id, ChunkIndex: 0, Content: "Tax planning content", TokenCount: 3},
		}
		err = txUow.ChunkRepository().CreateBulk(ctx, chunks)
		assert.NoError(t, err)

		count, err := txUow.ChunkRepository().Count(ctx, specification.ByDocumentID{DocumentID: doc.Id})
		assert.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("Check Conversation Round Trip", func(t *testing.T) {
		ctx := context.Background()
		txUow := uowFactory.NewUnitOfWork(ctx)
		if err := txUow.Begin(ctx); err != nil {
			t.Fatalf("Failed to begin transaction: %v", err)
		}
		defer txUow.Rollback()

		sessionKey := "integration-" + uuid.New().String()
		conv := &entity.Conversation{
			SessionKey: sessionKey,
			UserId:     "integration-user",
			GateState:  string(gate.StateOpen),
		}
		err := txUow.ConversationRepository().Create(ctx, conv)
		assert.NoError(t, err)

		found, err := txUow.ConversationRepository().FindOne(ctx, specification.BySessionKey{SessionKey: sessionKey})
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.Equal(t, string(gate.StateOpen), found.GateState)
		}
	})
}
