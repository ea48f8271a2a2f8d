// Package retriever implements semantic lookup over the rule knowledge
// base: a deterministic embedder plus a brute-force cosine index.
package retriever

import (
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

// DefaultDimension is the embedding width used when none is configured.
const DefaultDimension = 256

// Embedder converts free text into a numeric vector representation.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(text string) []float64
}

// HashingEmbedder is a stateless feature-hashing embedder: each token is
// hashed into a fixed-width bucket and the vector is L2-normalized. The
// same input always produces the same vector.
type HashingEmbedder struct {
	tokenPattern *regexp.Regexp
	dimension    int
}

// NewHashingEmbedder creates a hashing embedder with the given dimension.
func NewHashingEmbedder(dimension int) *HashingEmbedder {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &HashingEmbedder{
		dimension:    dimension,
		tokenPattern: regexp.MustCompile(`[\p{L}\d]+`),
	}
}

// Name returns the identifier of this embedder implementation.
func (e *HashingEmbedder) Name() string { return "hashing" }

// Dimension returns the width of produced vectors.
func (e *HashingEmbedder) Dimension() int { return e.dimension }

// Embed computes the normalized bucket-count vector for the given text.
func (e *HashingEmbedder) Embed(text string) []float64 {
	vec := make([]float64, e.dimension)

	tokens := e.tokenPattern.FindAllString(strings.ToLower(text), -1)
	for _, token := range tokens {
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		vec[int(h.Sum32())%e.dimension]++
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
