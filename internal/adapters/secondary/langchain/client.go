package langchain

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"csv-insight-service/internal/config"
	ports "csv-insight-service/internal/core/ports/output"
)

type langchainClient struct {
	name    string
	model   string
	llm     llms.Model
	timeout time.Duration
}

// NewOpenAIClient talks to any OpenAI-compatible chat completions endpoint.
func NewOpenAIClient(cfg *config.LLMConfig) (ports.LanguageModel, error) {
	opts := []openai.Option{
		openai.WithToken(strings.TrimPrefix(cfg.APIKey, "Bearer ")),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return &langchainClient{name: "OpenAI API", model: cfg.Model, llm: llm, timeout: cfg.Timeout}, nil
}

func NewOllamaClient(cfg *config.LLMConfig) (ports.LanguageModel, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	return &langchainClient{name: "Ollama", model: cfg.Model, llm: llm, timeout: cfg.Timeout}, nil
}

func (c *langchainClient) Name() string {
	return c.name
}

func (c *langchainClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reply, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt)
	if err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"service":      c.name,
		"model":        c.model,
		"reply_length": len(reply),
	}).Debug("Model reply received")

	return reply, nil
}
