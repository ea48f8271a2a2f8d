package kb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstmind/gstmind/internal/common"
	"github.com/gstmind/gstmind/internal/retriever"
)

const sampleRules = `GST rate for books is 5 percent.

Interstate supplies attract IGST.


GST registration threshold is 40 lakh rupees.
`

func TestChunkSplitsOnBlankLines(t *testing.T) {
	chunks := Chunk(sampleRules)

	require.Len(t, chunks, 3)
	assert.Equal(t, "GST rate for books is 5 percent.", chunks[0])
	assert.Equal(t, "Interstate supplies attract IGST.", chunks[1])
}

func TestChunkDiscardsEmptyFragments(t *testing.T) {
	assert.Empty(t, Chunk("\n\n   \n\n\n\n"))
}

func TestBuildEmbedsEveryChunk(t *testing.T) {
	embedder := retriever.NewHashingEmbedder(0)
	chunks := Build(embedder, sampleRules)

	require.Len(t, chunks, 3)
	for _, chunk := range chunks {
		assert.Len(t, chunk.Embedding, embedder.Dimension())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	embedder := retriever.NewHashingEmbedder(0)
	built := Build(embedder, sampleRules)

	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, Save(path, built))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, built, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, common.ErrNotFound)
}
