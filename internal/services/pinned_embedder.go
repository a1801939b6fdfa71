package services

import (
	"context"
	"fmt"
)

type pinnedEmbedder struct {
	inner  Embedder
	pinned map[string][]float32
}

// NewPinnedEmbedder embeds texts once, up front, and serves them from memory
// afterwards. The map is never written after construction, so concurrent
// requests read it without locking.
func NewPinnedEmbedder(ctx context.Context, inner Embedder, texts ...string) (Embedder, error) {
	pinned := make(map[string][]float32, len(texts))
	if len(texts) > 0 {
		vectors, err := inner.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed pinned texts: %w", err)
		}
		for i, text := range texts {
			pinned[text] = vectors[i]
		}
	}

	return &pinnedEmbedder{inner: inner, pinned: pinned}, nil
}

// Embed implements Embedder.
func (p *pinnedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	var missing []string
	var missingIdx []int
	for i, text := range texts {
		if v, ok := p.pinned[text]; ok {
			vectors[i] = v
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	fetched, err := p.inner.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}
	for j, idx := range missingIdx {
		vectors[idx] = fetched[j]
	}

	return vectors, nil
}
