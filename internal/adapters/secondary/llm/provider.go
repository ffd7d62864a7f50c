// Package llm picks the language model adapter named by configuration.
package llm

import (
	"fmt"

	"csv-insight-service/internal/adapters/secondary/gemini"
	"csv-insight-service/internal/adapters/secondary/langchain"
	"csv-insight-service/internal/config"
	ports "csv-insight-service/internal/core/ports/output"
)

func New(cfg *config.LLMConfig) (ports.LanguageModel, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return gemini.NewGeminiClient(cfg), nil
	case config.ProviderOpenAI:
		return langchain.NewOpenAIClient(cfg)
	case config.ProviderOllama:
		return langchain.NewOllamaClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
