// Package kb builds and loads the rule knowledge base: chunked
// regulatory text plus precomputed embeddings.
package kb

import (
	"strings"

	"github.com/gstmind/gstmind/internal/model"
	"github.com/gstmind/gstmind/internal/retriever"
)

// Chunk splits source text on blank-line separators and discards empty
// fragments. This is the chunking contract the retriever consumes.
func Chunk(source string) []string {
	parts := strings.Split(source, "\n\n")
	chunks := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			chunks = append(chunks, trimmed)
		}
	}
	return chunks
}

// Build chunks the source text and embeds every chunk with the given
// embedder. Chunk identity is positional from here on.
func Build(embedder retriever.Embedder, source string) []model.RuleChunk {
	texts := Chunk(source)
	chunks := make([]model.RuleChunk, 0, len(texts))
	for _, text := range texts {
		chunks = append(chunks, model.RuleChunk{
			Text:      text,
			Embedding: embedder.Embed(text),
		})
	}
	return chunks
}
