package kb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gstmind/gstmind/internal/common"
	"github.com/gstmind/gstmind/internal/model"
)

// vectorStoreFile is the on-disk knowledge-base format: parallel arrays
// of chunk texts and their embedding vectors.
type vectorStoreFile struct {
	Chunks     []string    `json:"chunks"`
	Embeddings [][]float64 `json:"embeddings"`
}

// Save writes the knowledge base to a JSON file.
func Save(path string, chunks []model.RuleChunk) error {
	file := vectorStoreFile{
		Chunks:     make([]string, 0, len(chunks)),
		Embeddings: make([][]float64, 0, len(chunks)),
	}
	for _, chunk := range chunks {
		file.Chunks = append(file.Chunks, chunk.Text)
		file.Embeddings = append(file.Embeddings, chunk.Embedding)
	}

	data, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to encode knowledge base: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create knowledge base directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write knowledge base: %w", err)
	}
	return nil
}

// Load reads a knowledge base previously written by Save.
func Load(path string) ([]model.RuleChunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: knowledge base at %s", common.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}

	var file vectorStoreFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode knowledge base: %w", err)
	}
	if len(file.Chunks) != len(file.Embeddings) {
		return nil, fmt.Errorf("corrupt knowledge base: %d chunks but %d embeddings",
			len(file.Chunks), len(file.Embeddings))
	}

	chunks := make([]model.RuleChunk, 0, len(file.Chunks))
	for i, text := range file.Chunks {
		chunks = append(chunks, model.RuleChunk{
			Text:      text,
			Embedding: file.Embeddings[i],
		})
	}
	return chunks, nil
}
