// Package llm provides the generation backend clients and the startup
// probe that selects one of them for the process lifetime.
package llm

import (
	"context"
)

// Client defines the interface for generation backends.
type Client interface {
	// Generate produces text for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)
	// Name identifies the backend for logging.
	Name() string
}

// Config holds the settings for constructing a generation client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}
