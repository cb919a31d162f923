package bootstrap

import (
	"log"
	"time"

	"advisor-chat-be/internal/config"
	"advisor-chat-be/internal/controller"
	"advisor-chat-be/internal/pkg/logger"
	"advisor-chat-be/internal/pkg/mailer"
	"advisor-chat-be/internal/repository/implementation"
	"advisor-chat-be/internal/repository/unitofwork"
	"advisor-chat-be/internal/service"
	"advisor-chat-be/pkg/chunker"
	"advisor-chat-be/pkg/embedding"
	"advisor-chat-be/pkg/llm/factory"
	"advisor-chat-be/pkg/rag/response"
	"advisor-chat-be/pkg/rag/retriever"
	"advisor-chat-be/pkg/routing"
	"advisor-chat-be/pkg/sitefetch"

	pktNats "advisor-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController   controller.IChatController
	LeadController   controller.ILeadController
	AdminController  controller.IAdminController
	HealthController controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
		)
	} else {
		log.Println("[INFO] SMTP not configured, lead notifications disabled")
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS is optional; lead-captured events are skipped without it.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
		}
	}

	// 3. Model Providers
	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "openai":
		if cfg.Ai.OpenAIAPIKey != "" {
			embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.EmbeddingModel)
			log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
		} else {
			log.Println("[WARN] EMBEDDING_PROVIDER=openai but no API key, using keyword retrieval")
		}
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	default:
		log.Println("[INFO] No embedding provider configured, using keyword retrieval")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OpenAIAPIKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	devMode := llmProvider == nil
	if devMode {
		log.Println("[INFO] No LLM provider configured, running in dev mode with template responses")
	} else {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	// 4. Retrieval
	// The keyword retriever is always built: it doubles as the fallback when
	// query embedding fails at request time.
	chunkSource := implementation.NewChunkRepository(db)
	keywordRetriever := retriever.NewKeywordRetriever(chunkSource, cfg.Assistant.CorpusCacheTTL)

	var chunkRetriever retriever.Retriever = keywordRetriever
	if embeddingProvider != nil {
		chunkRetriever = retriever.NewVectorRetriever(chunkSource, embeddingProvider, keywordRetriever, sysLogger.Zap())
	}

	// Live site content is optional; without a base URL answers rely on the
	// approved knowledge base alone.
	var siteFetcher *sitefetch.Fetcher
	if cfg.Assistant.SiteContentBaseURL != "" {
		siteFetcher = sitefetch.NewFetcher(cfg.Assistant.SiteContentBaseURL, 10*time.Second, cfg.Assistant.SiteContentCacheTTL)
		log.Printf("[INFO] Site content augmentation enabled for %s", cfg.Assistant.SiteContentBaseURL)
	}

	generator := response.NewGenerator(llmProvider, response.Config{
		Model:       cfg.Ai.LLMModel,
		Temperature: cfg.Ai.Temperature,
		MaxTokens:   cfg.Ai.MaxTokens,
		Timeout:     cfg.Ai.RequestTimeout,
	}, sysLogger.Zap())

	// 5. Async embedding pipeline, only when a provider exists.
	var publisherService service.IPublisherService
	var consumerService service.IConsumerService
	if embeddingProvider != nil {
		publisherService = service.NewPublisherService(cfg.Assistant.EmbedTopicName, pubSub)
		consumerService = service.NewConsumerService(
			pubSub,
			cfg.Assistant.EmbedTopicName,
			uowFactory,
			embeddingProvider,
		)
	}

	// 6. Services
	leadRouter := routing.NewRouter(routing.Config{BookingURLs: cfg.Routing.BookingURLs})

	ingestionService := service.NewIngestionService(
		uowFactory,
		chunker.Config{
			MinTokens: cfg.Assistant.ChunkMinTokens,
			MaxTokens: cfg.Assistant.ChunkMaxTokens,
		},
		publisherService,
		natsPub,
		sysLogger,
		keywordRetriever.InvalidateCorpus,
	)

	chatService := service.NewChatService(
		uowFactory,
		chunkRetriever,
		generator,
		siteFetcher,
		service.ChatConfig{
			GateEnabled:    cfg.Assistant.GateEnabled,
			RetrievalLimit: cfg.Assistant.RetrievalLimit,
		},
		sysLogger,
	)

	leadService := service.NewLeadService(
		uowFactory,
		leadRouter,
		chunkRetriever,
		generator,
		siteFetcher,
		emailService,
		natsPub,
		service.LeadConfig{
			RetrievalLimit: cfg.Assistant.RetrievalLimit,
			AdvisorEmail:   cfg.SMTP.AdvisorEmail,
		},
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		ChatController:   controller.NewChatController(chatService),
		LeadController:   controller.NewLeadController(leadService),
		AdminController:  controller.NewAdminController(ingestionService),
		HealthController: controller.NewHealthController(db, devMode),

		ConsumerService: consumerService,
	}
}
