package retriever

import (
	"sort"

	"github.com/gstmind/gstmind/internal/model"
)

// Index ranks knowledge-base chunks against query embeddings. Chunks and
// their vectors are immutable after construction, so concurrent reads
// need no locking.
type Index struct {
	embedder Embedder
	chunks   []model.RuleChunk
}

// NewIndex builds an index over prepared rule chunks.
func NewIndex(embedder Embedder, chunks []model.RuleChunk) *Index {
	return &Index{
		embedder: embedder,
		chunks:   chunks,
	}
}

// Size reports the number of indexed chunks.
func (ix *Index) Size() int {
	return len(ix.chunks)
}

// Retrieve returns up to topK chunk texts ranked by descending cosine
// similarity to the query. Score ties keep original chunk order. An
// empty knowledge base yields an empty slice.
func (ix *Index) Retrieve(query string, topK int) []string {
	if topK <= 0 || len(ix.chunks) == 0 {
		return []string{}
	}
	if topK > len(ix.chunks) {
		topK = len(ix.chunks)
	}

	queryVec := ix.embedder.Embed(query)

	scores := make([]float64, len(ix.chunks))
	order := make([]int, len(ix.chunks))
	for i, chunk := range ix.chunks {
		scores[i] = dot(queryVec, chunk.Embedding)
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	results := make([]string, 0, topK)
	for _, idx := range order[:topK] {
		results = append(results, ix.chunks[idx].Text)
	}
	return results
}

// dot computes the inner product of two vectors. Vectors are stored
// L2-normalized, so this is the cosine similarity.
func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
