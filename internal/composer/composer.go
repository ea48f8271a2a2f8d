// Package composer turns retrieved rule passages into a natural-language
// answer, degrading to a templated placeholder when no generation
// backend is reachable.
package composer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gstmind/gstmind/internal/llm"
)

// previewLen is how much of the first passage the offline placeholder echoes.
const previewLen = 30

// Composer writes answers constrained to the supplied passages.
type Composer struct {
	client llm.Client
}

// New creates a composer. A nil client means no backend was discovered;
// the composer then always answers with the offline placeholder.
func New(client llm.Client) *Composer {
	return &Composer{client: client}
}

// BuildPrompt constructs the constrained prompt: answer strictly from
// the supplied passages and say so when the answer is not in them.
func BuildPrompt(query string, passages []string) string {
	var b strings.Builder
	b.WriteString("You are an expert GST assistant. Answer the question based STRICTLY on the provided rules.\n")
	b.WriteString("Do not use external knowledge. If the answer is not in the rules, state that you don't know.\n\n")
	b.WriteString("CONTEXT RULES:\n")
	b.WriteString(strings.Join(passages, "\n\n"))
	b.WriteString("\n\nQUESTION:\n")
	b.WriteString(query)
	b.WriteString("\n\nANSWER (be concise and cite the specific rule or rate):")
	return b.String()
}

// Compose produces the answer text. Generation failures never propagate:
// the caller always gets either generated prose or a clearly marked
// placeholder, and keeps the passages either way.
func (c *Composer) Compose(ctx context.Context, query string, passages []string) string {
	if c.client == nil {
		return offlineAnswer(passages)
	}

	answer, err := c.client.Generate(ctx, BuildPrompt(query, passages))
	if err != nil {
		slog.Warn("generation failed, falling back to placeholder",
			"backend", c.client.Name(),
			"error", err)
		return offlineAnswer(passages)
	}
	return answer
}

// offlineAnswer is the deterministic fallback: it echoes a preview of
// the top passage rather than fabricating content.
func offlineAnswer(passages []string) string {
	if len(passages) == 0 {
		return "[offline] No matching rules were found in the knowledge base."
	}

	preview := passages[0]
	if runes := []rune(preview); len(runes) > previewLen {
		preview = string(runes[:previewLen]) + "..."
	}
	return fmt.Sprintf("[offline] No generation backend is reachable. Closest matching rule: %q", preview)
}
