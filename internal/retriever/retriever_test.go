package retriever

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstmind/gstmind/internal/model"
)

func buildIndex(t *testing.T, texts ...string) *Index {
	t.Helper()

	embedder := NewHashingEmbedder(0)
	chunks := make([]model.RuleChunk, 0, len(texts))
	for _, text := range texts {
		chunks = append(chunks, model.RuleChunk{
			Text:      text,
			Embedding: embedder.Embed(text),
		})
	}
	return NewIndex(embedder, chunks)
}

func TestEmbedIsDeterministic(t *testing.T) {
	embedder := NewHashingEmbedder(0)

	first := embedder.Embed("what is the gst rate for books")
	second := embedder.Embed("what is the gst rate for books")

	assert.Equal(t, first, second)
	assert.Len(t, first, DefaultDimension)
}

func TestEmbedEmptyText(t *testing.T) {
	embedder := NewHashingEmbedder(16)

	vec := embedder.Embed("")
	require.Len(t, vec, 16)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestRetrieveRanksByRelevance(t *testing.T) {
	index := buildIndex(t,
		"GST rate for books and printed material is 5 percent",
		"Interstate supplies attract IGST at the applicable rate",
		"GST rate for mobile phones is 18 percent",
	)

	results := index.Retrieve("what is the gst rate for books", 2)

	require.Len(t, results, 2)
	assert.Contains(t, results[0], "books")
}

func TestRetrieveBounds(t *testing.T) {
	index := buildIndex(t, "rule one", "rule two")

	assert.Empty(t, index.Retrieve("anything", 0))
	assert.Len(t, index.Retrieve("rule", 10), 2, "topK never exceeds the knowledge base")
}

func TestRetrieveEmptyKnowledgeBase(t *testing.T) {
	embedder := NewHashingEmbedder(0)
	index := NewIndex(embedder, nil)

	assert.Empty(t, index.Retrieve("anything", 3))
}

func TestRetrieveIsDeterministic(t *testing.T) {
	index := buildIndex(t,
		"GST registration threshold is 40 lakh rupees",
		"Composition scheme is available below 1.5 crore turnover",
		"Input tax credit requires a valid tax invoice",
	)

	first := index.Retrieve("registration threshold", 3)
	second := index.Retrieve("registration threshold", 3)

	assert.Equal(t, first, second)
}

func TestRetrieveStableTieBreak(t *testing.T) {
	// Identical chunks score identically; original order must hold.
	index := buildIndex(t, "same rule text", "same rule text", "same rule text")

	results := index.Retrieve("unrelated query", 3)
	require.Len(t, results, 3)
	assert.Equal(t, []string{"same rule text", "same rule text", "same rule text"}, results)
}
