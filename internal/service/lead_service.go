package service

import (
	"context"
	"strings"
	"time"

	"advisor-chat-be/internal/constant"
	"advisor-chat-be/internal/dto"
	"advisor-chat-be/internal/entity"
	"advisor-chat-be/internal/pkg/logger"
	"advisor-chat-be/internal/pkg/mailer"
	"advisor-chat-be/internal/repository/specification"
	"advisor-chat-be/internal/repository/unitofwork"
	"advisor-chat-be/pkg/events"
	"advisor-chat-be/pkg/gate"
	"advisor-chat-be/pkg/llm"
	pkgnats "advisor-chat-be/pkg/nats"
	"advisor-chat-be/pkg/rag/response"
	"advisor-chat-be/pkg/rag/retriever"
	"advisor-chat-be/pkg/routing"
	"advisor-chat-be/pkg/sitefetch"

	"github.com/google/uuid"
)

type ILeadService interface {
	CreateLead(ctx context.Context, req *dto.CreateLeadRequest) (*dto.CreateLeadResponse, error)
}

type LeadConfig struct {
	RetrievalLimit int
	// AdvisorEmail receives the new-lead notification; empty disables it.
	AdvisorEmail string
}

type leadService struct {
	uowFactory     unitofwork.RepositoryFactory
	router         *routing.Router
	retriever      retriever.Retriever
	generator      *response.Generator
	siteFetcher    *sitefetch.Fetcher   // nil when no site base URL is configured
	emailService   mailer.IEmailService // nil when SMTP is not configured
	eventPublisher *pkgnats.Publisher   // nil when NATS is not configured
	cfg            LeadConfig
	log            logger.ILogger
}

func NewLeadService(
	uowFactory unitofwork.RepositoryFactory,
	router *routing.Router,
	chunkRetriever retriever.Retriever,
	generator *response.Generator,
	siteFetcher *sitefetch.Fetcher,
	emailService mailer.IEmailService,
	eventPublisher *pkgnats.Publisher,
	cfg LeadConfig,
	appLogger logger.ILogger,
) ILeadService {
	if cfg.RetrievalLimit <= 0 {
		cfg.RetrievalLimit = 3
	}
	return &leadService{
		uowFactory:     uowFactory,
		router:         router,
		retriever:      chunkRetriever,
		generator:      generator,
		siteFetcher:    siteFetcher,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		cfg:            cfg,
		log:            appLogger,
	}
}

// CreateLead captures the contact form: routes the transcript to a bucket
// and meeting tier, upserts the lead by email, writes one consent audit
// record, closes the gate, then answers the message the gate held back.
func (ls *leadService) CreateLead(ctx context.Context, req *dto.CreateLeadRequest) (*dto.CreateLeadResponse, error) {
	uow := ls.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.BySessionKey{SessionKey: req.SessionKey})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, &dto.NotFoundError{Resource: "conversation"}
	}

	state := gate.State(conversation.GateState)
	nextState, err := gate.Next(state, gate.EventLeadCaptured)
	if err != nil {
		if state == gate.StateCaptured {
			return nil, &dto.StateViolationError{Message: "lead already captured for this conversation"}
		}
		return nil, &dto.StateViolationError{Message: "conversation is not awaiting lead capture"}
	}

	transcript, err := ls.userTranscript(ctx, uow, conversation.Id)
	if err != nil {
		return nil, err
	}
	outcome := ls.router.Route(transcript)

	lead := entity.Lead{
		Id:          uuid.New(),
		FirstName:   req.FirstName,
		Email:       req.Email,
		Phone:       req.Phone,
		Bucket:      string(outcome.Bucket),
		MeetingType: string(outcome.MeetingType),
		BookingURL:  outcome.BookingURL,
		Metadata: map[string]interface{}{
			"session_id":     req.SessionKey,
			"capture_method": "in_chat_form",
		},
		CreatedAt: time.Now(),
	}

	pendingMessage := conversation.PendingMessage

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.LeadRepository().Upsert(ctx, &lead); err != nil {
		return nil, err
	}

	consentEvent := entity.ConsentEvent{
		Id:                uuid.New(),
		LeadId:            lead.Id,
		ConversationId:    &conversation.Id,
		EventType:         constant.ConsentEventTypeLeadCapture,
		IPAddress:         req.IPAddress,
		UserAgent:         req.UserAgent,
		PageURL:           req.PageURL,
		DisclosureText:    constant.DisclosureText,
		DisclosureVersion: constant.DisclosureVersion,
		Metadata: map[string]interface{}{
			"session_id":     req.SessionKey,
			"capture_method": "in_chat_form",
		},
		CreatedAt: time.Now(),
	}
	if err := uow.ConsentEventRepository().Create(ctx, &consentEvent); err != nil {
		return nil, err
	}

	conversation.LeadId = &lead.Id
	conversation.GateState = string(nextState)
	conversation.PendingMessage = ""
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	resp := &dto.CreateLeadResponse{
		LeadId:      lead.Id,
		Bucket:      lead.Bucket,
		MeetingType: lead.MeetingType,
		BookingURL:  lead.BookingURL,
		CreatedAt:   lead.CreatedAt,
	}

	if pendingMessage != "" {
		reply, citations, err := ls.answerPending(ctx, conversation, pendingMessage)
		if err != nil {
			// The lead is already saved; a failed answer must not undo that.
			ls.log.Error("lead", "failed to answer pending message", map[string]interface{}{"error": err.Error()})
		} else {
			resp.Reply = reply
			resp.Citations = citations
		}
	}

	ls.notify(ctx, &lead)

	return resp, nil
}

// userTranscript joins the conversation's user messages in order; assistant
// turns never influence routing.
func (ls *leadService) userTranscript(ctx context.Context, uow unitofwork.UnitOfWork, conversationId uuid.UUID) (string, error) {
	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.ByRole{Role: constant.MessageRoleUser},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		parts = append(parts, m.Content)
	}
	return strings.Join(parts, "\n"), nil
}

// answerPending runs the held message through the normal retrieval and
// generation path and persists the assistant reply.
func (ls *leadService) answerPending(ctx context.Context, conversation *entity.Conversation, pendingMessage string) (string, []dto.CitationDTO, error) {
	uow := ls.uowFactory.NewUnitOfWork(ctx)

	chunks, err := ls.retriever.Retrieve(ctx, pendingMessage, ls.cfg.RetrievalLimit)
	if err != nil {
		ls.log.Warn("lead", "retrieval unavailable, answering without context", map[string]interface{}{"error": err.Error()})
		chunks = nil
	}

	var pages []sitefetch.Page
	if ls.siteFetcher != nil {
		pages = ls.siteFetcher.Search(ctx, pendingMessage)
	}

	history := []llm.Message{{Role: constant.MessageRoleUser, Content: pendingMessage}}
	result := ls.generator.Generate(ctx, constant.SystemPrompt, history, chunks, pages)

	assistantMessage := entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Role:           constant.MessageRoleAssistant,
		Content:        result.Text,
		Metadata: map[string]interface{}{
			"context_chunks": len(chunks),
			"fallback":       result.Fallback,
			"post_gate":      true,
		},
		CreatedAt: time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &assistantMessage); err != nil {
		return "", nil, err
	}

	citationDTOs := make([]dto.CitationDTO, 0, len(chunks))
	if len(chunks) > 0 {
		citationEntities := make([]*entity.MessageCitation, len(chunks))
		for i, c := range chunks {
			citationEntities[i] = &entity.MessageCitation{
				Id:         uuid.New(),
				MessageId:  assistantMessage.Id,
				ChunkId:    c.Chunk.Id,
				DocumentId: c.Chunk.DocumentId,
				CreatedAt:  time.Now(),
			}
			citationDTOs = append(citationDTOs, dto.CitationDTO{
				ChunkId:       c.Chunk.Id,
				DocumentId:    c.Chunk.DocumentId,
				Title:         c.DocumentTitle,
				SourceURL:     c.SourceURL,
				PublishedDate: c.PublishedDate,
			})
		}
		if err := uow.MessageRepository().CreateCitations(ctx, citationEntities); err != nil {
			return "", nil, err
		}
	}

	return result.Text, citationDTOs, nil
}

// notify fans the captured lead out to email and the event bus. Both are
// auxiliary; failures are logged, never surfaced.
func (ls *leadService) notify(ctx context.Context, lead *entity.Lead) {
	if ls.emailService != nil && ls.cfg.AdvisorEmail != "" {
		notification := mailer.LeadNotification{
			FirstName:   lead.FirstName,
			Email:       lead.Email,
			Phone:       lead.Phone,
			Bucket:      lead.Bucket,
			MeetingType: lead.MeetingType,
			BookingURL:  lead.BookingURL,
		}
		if err := ls.emailService.SendLeadNotification(ls.cfg.AdvisorEmail, notification); err != nil {
			ls.log.Warn("lead", "failed to send lead notification email", map[string]interface{}{"error": err.Error()})
		}
	}

	if ls.eventPublisher != nil {
		evt := events.NewLeadCaptured(lead.Id.String(), lead.Email, lead.Bucket, lead.MeetingType, lead.BookingURL)
		if err := ls.eventPublisher.Publish(ctx, evt); err != nil {
			ls.log.Warn("lead", "failed to publish LEAD_CAPTURED event", map[string]interface{}{"error": err.Error()})
		}
	}
}
