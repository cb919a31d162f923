package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Ai        AIConfig
	Assistant AssistantConfig
	Routing   RoutingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Email    string
	Password string
	// AdvisorEmail receives new-lead notifications.
	AdvisorEmail string
}

type AIConfig struct {
	// LLMProvider selects the chat backend: "openai", "ollama" or "none".
	LLMProvider   string
	LLMModel      string
	OpenAIAPIKey  string
	OllamaBaseURL string
	// EmbeddingProvider: "openai", "ollama" or "none" (keyword retrieval).
	EmbeddingProvider string
	EmbeddingModel    string
	Temperature       float64
	MaxTokens         int
	RequestTimeout    time.Duration
}

type AssistantConfig struct {
	ChunkMinTokens int
	ChunkMaxTokens int
	RetrievalLimit int
	GateEnabled    bool
	EmbedTopicName string
	CorpusCacheTTL time.Duration

	// SiteContentBaseURL enables live site-content augmentation; empty
	// disables it.
	SiteContentBaseURL  string
	SiteContentCacheTTL time.Duration
}

type RoutingConfig struct {
	// BookingURLs maps "<bucket>_<tier>" to a scheduling link; empty entries
	// fall back to the built-in table.
	BookingURLs map[string]string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3001"),
			NatsURL:            getEnv("NATS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:         getEnv("SMTP_HOST", ""),
			Port:         getEnvAsInt("SMTP_PORT", 587),
			Email:        getEnv("SMTP_EMAIL", ""),
			Password:     getEnv("SMTP_PASSWORD", ""),
			AdvisorEmail: getEnv("ADVISOR_NOTIFY_EMAIL", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "none"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4-turbo-preview"),
			OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "none"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			MaxTokens:         getEnvAsInt("LLM_MAX_TOKENS", 1000),
			RequestTimeout:    getEnvAsDuration("LLM_REQUEST_TIMEOUT", 30*time.Second),
		},
		Assistant: AssistantConfig{
			ChunkMinTokens:      getEnvAsInt("CHUNK_MIN_TOKENS", 300),
			ChunkMaxTokens:      getEnvAsInt("CHUNK_MAX_TOKENS", 800),
			RetrievalLimit:      getEnvAsInt("RAG_CHUNK_LIMIT", 3),
			GateEnabled:         getEnvAsBool("ENABLE_LEAD_GATE", true),
			EmbedTopicName:      getEnv("EMBED_DOCUMENT_TOPIC_NAME", "EMBED_DOCUMENT_CHUNKS"),
			CorpusCacheTTL:      getEnvAsDuration("CORPUS_CACHE_TTL", 60*time.Second),
			SiteContentBaseURL:  getEnv("SITE_CONTENT_BASE_URL", ""),
			SiteContentCacheTTL: getEnvAsDuration("SITE_CONTENT_CACHE_TTL", 5*time.Minute),
		},
		Routing: RoutingConfig{
			BookingURLs: map[string]string{},
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
