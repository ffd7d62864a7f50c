package ports

import "context"

// LanguageModel is the external text-generation service.
// Generate blocks until the service answers or fails; retries and timeouts
// belong to the implementation.
type LanguageModel interface {
	// Name is the human readable service name used in user-facing errors,
	// e.g. "Gemini API".
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}
