package services

import (
	"context"
	"fmt"
	"log"

	"alfredoptarigan/resume-matcher/internal/config"
)

// NewEmbedderFromConfig builds the configured embedding backend and stacks the
// cache and pinned decorators on top. The returned cleanup closes whatever
// connections were opened; it is always safe to call.
func NewEmbedderFromConfig(ctx context.Context, cfg *config.Config, pinnedTexts ...string) (Embedder, func(), error) {
	cleanup := func() {}

	var embedder Embedder
	switch cfg.Embedding.Provider {
	case config.ProviderGemini:
		gemini, err := NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Embedding.Model, cfg.Embedding.MaxInputChars)
		if err != nil {
			return nil, cleanup, err
		}
		embedder = gemini
	case config.ProviderOpenAI:
		embedder = NewOpenAIService(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.Embedding.Model, cfg.Embedding.MaxInputChars)
	default:
		return nil, cleanup, fmt.Errorf("unknown embedding provider: %q", cfg.Embedding.Provider)
	}

	if cfg.Cache.Address != "" {
		cache, closeCache, err := NewValkeyEmbeddingCache(ctx, cfg.Cache.Address, cfg.Cache.Password, cfg.Cache.TTL)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = closeCache
		embedder = NewCachedEmbedder(embedder, cache, cfg.Embedding.Provider+"/"+cfg.Embedding.Model)
		log.Printf("✅ Embedding cache enabled (%s)\n", cfg.Cache.Address)
	}

	if cfg.Embedding.PinJobDescription && len(pinnedTexts) > 0 {
		pinCtx := ctx
		if cfg.Embedding.Timeout > 0 {
			var cancel context.CancelFunc
			pinCtx, cancel = context.WithTimeout(ctx, cfg.Embedding.Timeout)
			defer cancel()
		}

		pinned, err := NewPinnedEmbedder(pinCtx, embedder, pinnedTexts...)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		embedder = pinned
	}

	return embedder, cleanup, nil
}

// NewExtractorFromConfig picks the PDF backend and wraps it in the
// extension-based dispatcher.
func NewExtractorFromConfig(cfg *config.Config) (TextExtractor, error) {
	switch cfg.Extraction.PDFBackend {
	case config.PDFBackendPDF:
		return NewTextExtractor(NewPDFParserService()), nil
	case config.PDFBackendFitz:
		return NewTextExtractor(NewFitzParserService()), nil
	default:
		return nil, fmt.Errorf("unknown pdf backend: %q", cfg.Extraction.PDFBackend)
	}
}
