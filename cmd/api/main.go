package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/handlers"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/server"
	"alfredoptarigan/resume-matcher/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	ctx := context.Background()

	// Job description is read once and never changes afterwards
	jobDescription, err := services.LoadJobDescription(cfg.JobDescription.Path)
	if err != nil {
		log.Fatalf("❌ Failed to load job description: %v", err)
	}
	log.Printf("✅ Job description loaded from %s (%d characters)\n", cfg.JobDescription.Path, len(jobDescription))

	// Storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	// Embedding model, shared by every request
	embedder, cleanup, err := services.NewEmbedderFromConfig(ctx, cfg, jobDescription)
	if err != nil {
		log.Fatalf("❌ Failed to initialize embedder: %v", err)
	}
	defer cleanup()
	log.Printf("✅ Embedder initialized (%s, %s)\n", cfg.Embedding.Provider, cfg.Embedding.Model)

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
	log.Println("✅ Services initialized successfully")

	// Optional upload ledger
	var docRepo repositories.DocumentRepository
	var documentHandler *handlers.DocumentHandler
	closeDB := func() error { return nil }
	if cfg.Database.Enabled {
		db, closeFn, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		closeDB = closeFn
		docRepo = repositories.NewDocumentRepository(db)
		documentHandler = handlers.NewDocumentHandler(docRepo)
		log.Println("✅ Upload ledger enabled")
	}

	// Optional S3 archive
	var archiver services.Archiver
	if cfg.Archive.Bucket != "" {
		archiver, err = services.NewS3Archiver(ctx, services.S3Config{
			Bucket:      cfg.Archive.Bucket,
			Prefix:      cfg.Archive.Prefix,
			Region:      cfg.Archive.Region,
			EndpointURL: cfg.Archive.EndpointURL,
			AccessKey:   cfg.Archive.AccessKey,
			SecretKey:   cfg.Archive.SecretKey,
		})
		if err != nil {
			log.Fatalf("❌ Failed to initialize S3 archive: %v", err)
		}
		log.Printf("✅ Upload archive enabled (s3://%s/%s)\n", cfg.Archive.Bucket, cfg.Archive.Prefix)
	}

	uploadHandler := handlers.NewUploadHandler(
		matchService,
		storageService,
		cfg.Storage.MaxFileSize,
		docRepo,
		archiver,
	)
	log.Println("✅ Handlers initialized")

	app := server.New(uploadHandler, documentHandler, server.Options{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Storage.MaxFileSize,
		AccessLog:    true,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}

	if err := closeDB(); err != nil {
		log.Printf("❌ %v", err)
	}
}
