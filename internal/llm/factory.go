package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/biaslab/internal/model"
)

// BackendsFromConfig builds the ranked backend chain. Providers whose
// credentials are missing are skipped: they can never succeed, and the
// orchestrator's heuristic fallback covers the all-skipped case.
func BackendsFromConfig(cfg model.LLMConfig) ([]Backend, error) {
	var backends []Backend
	for _, name := range cfg.Providers {
		switch strings.ToLower(name) {
		case "openai":
			if cfg.OpenAIKey == "" {
				continue
			}
			b, err := NewOpenAIBackend(cfg.OpenAIKey, cfg.OpenAIModel)
			if err != nil {
				return nil, err
			}
			backends = append(backends, b)

		case "anthropic", "claude":
			if cfg.AnthropicKey == "" {
				continue
			}
			b, err := NewAnthropicBackend(cfg.AnthropicKey, cfg.AnthropicModel)
			if err != nil {
				return nil, err
			}
			backends = append(backends, b)

		case "ollama":
			b, err := NewOllamaBackend(cfg.OllamaBaseURL, cfg.OllamaModel)
			if err != nil {
				return nil, err
			}
			backends = append(backends, b)

		default:
			return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", name)
		}
	}
	return backends, nil
}
