package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const geminiTaskSemanticSimilarity = "SEMANTIC_SIMILARITY"

type geminiEmbedder struct {
	client        *genai.Client
	embedModel    string
	maxInputChars int
}

// NewGeminiService creates the genai client once; it is shared by every request.
func NewGeminiService(ctx context.Context, apiKey, embedModel string, maxInputChars int) (Embedder, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return NewGeminiEmbedder(client, embedModel, maxInputChars), nil
}

// NewGeminiEmbedder wraps an existing client, e.g. one built on a recording HTTP client.
func NewGeminiEmbedder(client *genai.Client, embedModel string, maxInputChars int) Embedder {
	return &geminiEmbedder{
		client:        client,
		embedModel:    embedModel,
		maxInputChars: maxInputChars,
	}
}

// Embed implements Embedder.
func (g *geminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(truncateRunes(text, g.maxInputChars), genai.RoleUser))
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, contents, &genai.EmbedContentConfig{
		TaskType: geminiTaskSemanticSimilarity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, ErrEmptyEmbedding
	}

	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrEmbeddingCountMismatch, len(result.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(result.Embeddings))
	for i, e := range result.Embeddings {
		if e == nil || len(e.Values) == 0 {
			return nil, fmt.Errorf("%w: input %d", ErrEmptyEmbedding, i)
		}
		vectors[i] = e.Values
	}

	return vectors, nil
}
