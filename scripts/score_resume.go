package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/services"
)

// Scores local résumé files against the configured job description:
//
//	go run ./scripts resume.pdf other.docx
func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <resume file>...", filepath.Base(os.Args[0]))
	}

	log.Println("🚀 Starting offline scoring...")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	jobDescription, err := services.LoadJobDescription(cfg.JobDescription.Path)
	if err != nil {
		log.Fatalf("❌ Failed to load job description: %v", err)
	}

	ctx := context.Background()

	embedder, cleanup, err := services.NewEmbedderFromConfig(ctx, cfg, jobDescription)
	if err != nil {
		log.Fatalf("❌ Failed to initialize embedder: %v", err)
	}
	defer cleanup()

	extractor, err := services.NewExtractorFromConfig(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize text extractor: %v", err)
	}

	matchService := services.NewMatchService(
		jobDescription,
		extractor,
		services.NewSimilarityScorer(embedder),
		cfg.Embedding.Timeout,
	)

	successCount := 0
	failCount := 0

	for _, path := range os.Args[1:] {
		score, err := matchService.Match(ctx, path)
		if err != nil {
			log.Printf("   ❌ %s: %v", path, err)
			failCount++
			continue
		}

		log.Printf("   ✅ %s: %.2f%%", path, score)
		successCount++
	}

	log.Println(strings.Repeat("=", 60))
	log.Printf("📊 Scored: %d, failed: %d", successCount, failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		cleanup()
		os.Exit(1)
	}
}
