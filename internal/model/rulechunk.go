package model

// RuleChunk is an immutable passage of regulatory text together with its
// embedding vector. Chunks are created once when the knowledge base is
// built; their identity is their position within the knowledge base.
type RuleChunk struct {
	Text      string
	Embedding []float64
}
