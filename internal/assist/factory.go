package assist

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/veracity/internal/model"
)

// New builds the assistant for the configured provider. An empty provider
// name yields the deterministic fallback; any configured backend is
// wrapped so its failures degrade gracefully.
func New(cfg model.AssistConfig, logger *zap.Logger) (Assistant, error) {
	if cfg.Provider == "" {
		return NewFallback(), nil
	}

	var (
		backend completer
		err     error
	)
	switch cfg.Provider {
	case "openai":
		backend, err = NewOpenAIBackend(cfg)
	case "anthropic":
		backend, err = NewAnthropicBackend(cfg)
	case "ollama":
		backend, err = NewOllamaBackend(cfg)
	default:
		return nil, fmt.Errorf("unknown assist provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("configure assist provider %s: %w", cfg.Provider, err)
	}

	return NewGraceful(NewClient(backend), logger), nil
}
