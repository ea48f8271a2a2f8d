package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstmind/gstmind/internal/common"
)

func TestNewClient(t *testing.T) {
	t.Run("unsupported provider", func(t *testing.T) {
		_, err := NewClient(Config{Provider: "llama", APIKey: "key"})
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})

	t.Run("missing gemini key", func(t *testing.T) {
		_, err := NewClient(Config{Provider: "gemini"})
		assert.ErrorIs(t, err, common.ErrMissingConfig)
	})

	t.Run("missing openai key", func(t *testing.T) {
		_, err := NewClient(Config{Provider: "openai"})
		assert.ErrorIs(t, err, common.ErrMissingConfig)
	})

	t.Run("provider is case-insensitive", func(t *testing.T) {
		client, err := NewClient(Config{Provider: "Gemini", APIKey: "key"})
		require.NoError(t, err)
		assert.Equal(t, "gemini/gemini-1.5-flash", client.Name())
	})
}
