package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnsupportedVector is returned when an embedder hands back fewer vectors than asked for.
var ErrUnsupportedVector = errors.New("embedder returned unusable vectors")

// SimilarityScorer rates how close two texts are, from 0 to 100.
type SimilarityScorer interface {
	Score(ctx context.Context, text1, text2 string) (float64, error)
}

type embeddingScorer struct {
	embedder Embedder
}

func NewSimilarityScorer(embedder Embedder) SimilarityScorer {
	return &embeddingScorer{embedder: embedder}
}

// Score implements SimilarityScorer. Identical non-empty texts score 100 and
// otherwise blank input scores 0, neither calling the model.
func (s *embeddingScorer) Score(ctx context.Context, text1, text2 string) (float64, error) {
	if text1 != "" && text1 == text2 {
		return 100, nil
	}
	if strings.TrimSpace(text1) == "" || strings.TrimSpace(text2) == "" {
		return 0, nil
	}

	vectors, err := s.embedder.Embed(ctx, []string{text1, text2})
	if err != nil {
		return 0, fmt.Errorf("failed to embed texts: %w", err)
	}

	if len(vectors) != 2 {
		return 0, fmt.Errorf("%w: got %d vectors, want 2", ErrUnsupportedVector, len(vectors))
	}

	return MatchScore(CosineSimilarity(vectors[0], vectors[1])), nil
}

// CosineSimilarity returns a value in [-1, 1]. Mismatched lengths and zero
// vectors give 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dotProduct += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// MatchScore maps a cosine similarity to a percentage rounded to two decimals.
// Negative similarity clamps to 0.
func MatchScore(similarity float64) float64 {
	if math.IsNaN(similarity) || similarity <= 0 {
		return 0
	}
	if similarity >= 1 {
		return 100
	}

	return math.Round(similarity*100*100) / 100
}
