package composer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

// fakeBackend returns a canned answer or error.
type fakeBackend struct {
	err    error
	answer string
	prompt string
}

func (f *fakeBackend) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeBackend) Name() string { return "fake" }

func TestBuildPromptConstrainsToPassages(t *testing.T) {
	prompt := BuildPrompt("what is the rate for books", []string{
		"Books attract 5 percent GST.",
		"Mobile phones attract 18 percent GST.",
	})

	assert.Contains(t, prompt, "STRICTLY")
	assert.Contains(t, prompt, "Books attract 5 percent GST.")
	assert.Contains(t, prompt, "what is the rate for books")
}

func TestComposeUsesBackend(t *testing.T) {
	backend := &fakeBackend{answer: "Books attract 5 percent GST."}
	c := New(backend)

	answer := c.Compose(context.Background(), "rate for books?", []string{"Books attract 5 percent GST."})

	assert.Equal(t, "Books attract 5 percent GST.", answer)
	assert.Contains(t, backend.prompt, "rate for books?")
}

func TestComposeDegradesOnBackendError(t *testing.T) {
	backend := &fakeBackend{err: errors.New("unreachable")}
	c := New(backend)

	answer := c.Compose(context.Background(), "rate for books?", []string{
		"Books and printed material attract 5 percent GST under schedule I.",
	})

	assert.Contains(t, answer, "[offline]")
	assert.Contains(t, answer, "Books and printed material att...", "placeholder echoes a passage preview")
}

func TestComposePreviewCutsOnRuneBoundary(t *testing.T) {
	c := New(nil)
	passage := strings.Repeat("₹", previewLen+10)

	answer := c.Compose(context.Background(), "anything", []string{passage})

	assert.True(t, utf8.ValidString(answer))
	assert.Contains(t, answer, strings.Repeat("₹", previewLen)+"...")
}

func TestComposeWithoutBackend(t *testing.T) {
	c := New(nil)

	answer := c.Compose(context.Background(), "anything", []string{"some rule"})
	assert.Contains(t, answer, "[offline]")
}

func TestComposeWithoutPassages(t *testing.T) {
	c := New(nil)

	answer := c.Compose(context.Background(), "anything", nil)
	assert.Contains(t, answer, "No matching rules")
}
