package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"advisor-chat-be/internal/constant"
	"advisor-chat-be/internal/dto"
	"advisor-chat-be/internal/entity"
	"advisor-chat-be/internal/pkg/logger"
	"advisor-chat-be/internal/repository/contract"
	"advisor-chat-be/internal/repository/specification"
	"advisor-chat-be/internal/repository/unitofwork"
	"advisor-chat-be/pkg/gate"
	"advisor-chat-be/pkg/llm"
	"advisor-chat-be/pkg/rag/response"
	"advisor-chat-be/pkg/rag/retriever"
	"advisor-chat-be/pkg/sitefetch"

	"github.com/google/uuid"
)

const historyWindow = 6

type IChatService interface {
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetSessionsByUser(ctx context.Context, userId string) ([]*dto.GetSessionResponse, error)
	GetChatHistory(ctx context.Context, sessionKey string) ([]*dto.GetChatHistoryResponse, error)
	DeleteSession(ctx context.Context, sessionKey string) error
	SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
}

type ChatConfig struct {
	GateEnabled    bool
	RetrievalLimit int
}

type chatService struct {
	uowFactory  unitofwork.RepositoryFactory
	retriever   retriever.Retriever
	generator   *response.Generator
	siteFetcher *sitefetch.Fetcher // nil when no site base URL is configured
	cfg         ChatConfig
	log         logger.ILogger
	ragLogger   *log.Logger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	chunkRetriever retriever.Retriever,
	generator *response.Generator,
	siteFetcher *sitefetch.Fetcher,
	cfg ChatConfig,
	appLogger logger.ILogger,
) IChatService {
	if cfg.RetrievalLimit <= 0 {
		cfg.RetrievalLimit = 3
	}
	return &chatService{
		uowFactory:  uowFactory,
		retriever:   chunkRetriever,
		generator:   generator,
		siteFetcher: siteFetcher,
		cfg:         cfg,
		log:         appLogger,
		ragLogger:   initRagLogger(),
	}
}

func initRagLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_rag.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-RAG] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func (cs *chatService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation := entity.Conversation{
		Id:         uuid.New(),
		SessionKey: uuid.NewString(),
		UserId:     req.UserId,
		Title:      "New conversation",
		GateState:  string(gate.StateOpen),
		Metadata:   req.Metadata,
		CreatedAt:  time.Now(),
	}

	if err := uow.ConversationRepository().Create(ctx, &conversation); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{
		SessionKey: conversation.SessionKey,
		CreatedAt:  conversation.CreatedAt,
	}, nil
}

func (cs *chatService) GetSessionsByUser(ctx context.Context, userId string) ([]*dto.GetSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.GetSessionResponse, 0, len(conversations))
	for _, c := range conversations {
		resp = append(resp, &dto.GetSessionResponse{
			SessionKey: c.SessionKey,
			Title:      c.Title,
			GateState:  c.GateState,
			CreatedAt:  c.CreatedAt,
			UpdatedAt:  c.UpdatedAt,
		})
	}
	return resp, nil
}

func (cs *chatService) GetChatHistory(ctx context.Context, sessionKey string) ([]*dto.GetChatHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.BySessionKey{SessionKey: sessionKey})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, &dto.NotFoundError{Resource: "conversation"}
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversation.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	messageIds := make([]uuid.UUID, len(messages))
	for i, m := range messages {
		messageIds[i] = m.Id
	}
	citations, err := uow.MessageRepository().FindCitationsByMessageIds(ctx, messageIds)
	if err != nil {
		return nil, err
	}
	citationsByMessage := make(map[uuid.UUID][]dto.CitationDTO)
	for _, c := range citations {
		citationsByMessage[c.MessageId] = append(citationsByMessage[c.MessageId], dto.CitationDTO{
			ChunkId:       c.ChunkId,
			DocumentId:    c.DocumentId,
			Title:         c.Title,
			SourceURL:     c.SourceURL,
			PublishedDate: c.PublishedDate,
		})
	}

	resp := make([]*dto.GetChatHistoryResponse, 0, len(messages))
	for _, m := range messages {
		resp = append(resp, &dto.GetChatHistoryResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
			Citations: citationsByMessage[m.Id],
		})
	}
	return resp, nil
}

func (cs *chatService) DeleteSession(ctx context.Context, sessionKey string) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.BySessionKey{SessionKey: sessionKey})
	if err != nil {
		return err
	}
	if conversation == nil {
		return &dto.NotFoundError{Resource: "conversation"}
	}
	return uow.ConversationRepository().Delete(ctx, conversation.Id)
}

// SendChat runs one chat turn. While the lead gate is armed the message is
// held on the conversation and the gate prompt is returned instead of an
// answer; otherwise the turn goes through retrieval and generation.
func (cs *chatService) SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.BySessionKey{SessionKey: req.SessionKey})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		conversation = &entity.Conversation{
			Id:         uuid.New(),
			SessionKey: req.SessionKey,
			UserId:     req.UserId,
			Title:      "New conversation",
			GateState:  string(gate.StateOpen),
			Metadata:   req.Metadata,
			CreatedAt:  time.Now(),
		}
		if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
			return nil, err
		}
	}

	userMessage := entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Role:           constant.MessageRoleUser,
		Content:        req.Message,
		Metadata:       req.Metadata,
		CreatedAt:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &userMessage); err != nil {
		return nil, err
	}

	state := gate.State(conversation.GateState)
	if cs.cfg.GateEnabled && gate.ShouldGate(state) {
		return cs.gateTurn(ctx, uow, conversation, state, req)
	}

	return cs.answerTurn(ctx, uow, conversation, state, req.Message)
}

// gateTurn intercepts the message: it is parked on the conversation and the
// lead-capture prompt is returned.
func (cs *chatService) gateTurn(ctx context.Context, uow unitofwork.UnitOfWork, conversation *entity.Conversation, state gate.State, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	next, err := gate.Next(state, gate.EventUserMessage)
	if err != nil {
		return nil, err
	}
	conversation.GateState = string(next)
	conversation.PendingMessage = req.Message
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return nil, err
	}

	gateMessage := entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Role:           constant.MessageRoleAssistant,
		Content:        constant.LeadGateMessage,
		Metadata:       map[string]interface{}{"type": "lead_gate"},
		CreatedAt:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &gateMessage); err != nil {
		return nil, err
	}

	cs.ragLogger.Printf("session=%s gate shown, message held", conversation.SessionKey)

	return &dto.SendChatResponse{
		SessionKey:   conversation.SessionKey,
		Response:     gateMessage.Content,
		ShowLeadGate: true,
		Citations:    []dto.CitationDTO{},
	}, nil
}

// answerTurn runs retrieval + generation and arms the gate after the first
// assistant reply.
func (cs *chatService) answerTurn(ctx context.Context, uow unitofwork.UnitOfWork, conversation *entity.Conversation, state gate.State, userText string) (*dto.SendChatResponse, error) {
	chunks, err := cs.retriever.Retrieve(ctx, userText, cs.cfg.RetrievalLimit)
	if err != nil {
		// Retrieval being down should not take the chat surface with it.
		cs.log.Warn("chat", "retrieval unavailable, answering without context", map[string]interface{}{"error": err.Error()})
		chunks = nil
	}

	history, err := cs.loadHistory(ctx, uow, conversation.Id)
	if err != nil {
		return nil, err
	}

	var pages []sitefetch.Page
	if cs.siteFetcher != nil {
		pages = cs.siteFetcher.Search(ctx, userText)
	}

	result := cs.generator.Generate(ctx, constant.SystemPrompt, history, chunks, pages)
	cs.ragLogger.Printf("session=%s chunks=%d pages=%d fallback=%t", conversation.SessionKey, len(chunks), len(pages), result.Fallback)

	assistantMessage := entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Role:           constant.MessageRoleAssistant,
		Content:        result.Text,
		Metadata: map[string]interface{}{
			"context_chunks": len(chunks),
			"fallback":       result.Fallback,
		},
		CreatedAt: time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &assistantMessage); err != nil {
		return nil, err
	}

	citations, err := cs.persistCitations(ctx, uow, assistantMessage.Id, chunks)
	if err != nil {
		return nil, err
	}

	if cs.cfg.GateEnabled && state == gate.StateOpen {
		next, err := gate.Next(state, gate.EventAssistantReplied)
		if err != nil {
			return nil, err
		}
		conversation.GateState = string(next)
	}
	if conversation.Title == "New conversation" {
		conversation.Title = truncateTitle(userText)
	}
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return nil, err
	}

	return &dto.SendChatResponse{
		SessionKey:   conversation.SessionKey,
		Response:     result.Text,
		ShowLeadGate: false,
		Citations:    citations,
	}, nil
}

// loadHistory returns the last few user/assistant turns in chronological
// order, ending with the current user message.
func (cs *chatService) loadHistory(ctx context.Context, uow unitofwork.UnitOfWork, conversationId uuid.UUID) ([]llm.Message, error) {
	recent, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: historyWindow, Offset: 0},
	)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		m := recent[i]
		if m.Role != constant.MessageRoleUser && m.Role != constant.MessageRoleAssistant {
			continue
		}
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}
	return history, nil
}

func (cs *chatService) persistCitations(ctx context.Context, uow unitofwork.UnitOfWork, messageId uuid.UUID, chunks []*contract.RetrievedChunk) ([]dto.CitationDTO, error) {
	if len(chunks) == 0 {
		return []dto.CitationDTO{}, nil
	}

	citationEntities := make([]*entity.MessageCitation, len(chunks))
	citationDTOs := make([]dto.CitationDTO, len(chunks))
	for i, c := range chunks {
		citationEntities[i] = &entity.MessageCitation{
			Id:         uuid.New(),
			MessageId:  messageId,
			ChunkId:    c.Chunk.Id,
			DocumentId: c.Chunk.DocumentId,
			CreatedAt:  time.Now(),
		}
		citationDTOs[i] = dto.CitationDTO{
			ChunkId:       c.Chunk.Id,
			DocumentId:    c.Chunk.DocumentId,
			Title:         c.DocumentTitle,
			SourceURL:     c.SourceURL,
			PublishedDate: c.PublishedDate,
		}
	}
	if err := uow.MessageRepository().CreateCitations(ctx, citationEntities); err != nil {
		return nil, err
	}
	return citationDTOs, nil
}

func truncateTitle(text string) string {
	const maxLen = 60
	if len(text) <= maxLen {
		return text
	}
	return fmt.Sprintf("%s...", text[:maxLen])
}
