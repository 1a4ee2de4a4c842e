package factory

import (
	"fmt"

	"ai-ragchat-be/pkg/llm"
	"ai-ragchat-be/pkg/llm/huggingface"
	"ai-ragchat-be/pkg/llm/ollama"
	"ai-ragchat-be/pkg/llm/openai"
)

// ProviderConfig selects and configures an LLM backend.
type ProviderConfig struct {
	Type    string // "ollama", "openai", "huggingface"
	Model   string
	BaseURL string
	APIKey  string
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Type {
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Type)
	}
}
