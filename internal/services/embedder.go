package services

import (
	"context"
	"errors"
)

var (
	// ErrEmptyEmbedding is returned when a backend answers without vectors.
	ErrEmptyEmbedding = errors.New("empty embedding result")
	// ErrEmbeddingCountMismatch is returned when a backend returns a different
	// number of vectors than texts it was given.
	ErrEmbeddingCountMismatch = errors.New("embedding count does not match input count")
)

// Embedder turns texts into vectors, one per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// truncateRunes cuts text to at most max runes. max <= 0 disables truncation.
func truncateRunes(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}

	count := 0
	for i := range text {
		if count == max {
			return text[:i]
		}
		count++
	}
	return text
}
