package factory

import (
	"fmt"

	"advisor-chat-be/pkg/llm"
	"advisor-chat-be/pkg/llm/ollama"
	"advisor-chat-be/pkg/llm/openai"
)

// NewLLMProvider resolves the configured generation backend. An empty
// providerType (or "none") returns nil, nil: the response generator then runs
// in deterministic fallback mode, so callers never branch on "is a key set".
func NewLLMProvider(providerType, modelName, apiKey, ollamaBaseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "", "none":
		return nil, nil
	case "openai":
		if apiKey == "" {
			return nil, nil
		}
		return openai.NewOpenAIProvider(apiKey, modelName), nil
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
