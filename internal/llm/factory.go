package llm

import (
	"fmt"
	"strings"

	"github.com/gstmind/gstmind/internal/common"
)

// NewClient creates a generation client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "gemini":
		return newGeminiClient(cfg)
	case "openai":
		return newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported generation provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
}
