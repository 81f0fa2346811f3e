package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/doubletutu/portfolio-api/internal/api"
	"github.com/doubletutu/portfolio-api/internal/config"
	"github.com/doubletutu/portfolio-api/internal/logger"
	"github.com/doubletutu/portfolio-api/internal/repository"
	"github.com/doubletutu/portfolio-api/internal/service"
	"github.com/doubletutu/portfolio-api/internal/storage"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger := logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		File:        cfg.Log.File,
		ServiceName: "portfolio-api",
	})
	logger.SetDefaultLogger(appLogger)

	// Initialize repositories
	articleRepo := repository.NewArticleRepository(cfg.Data.ArticlesPath)
	projectRepo := repository.NewProjectRepository(cfg.Data.ProjectsPath)
	statsRepo := repository.NewStatsRepository(cfg.Data.StatsPath)

	// Initialize vector store and indexer when the embedding API and a vector
	// backend are both configured. The site works without them; only the
	// RAG-augmented chat and the admin reindex endpoint need the index.
	ctx := context.Background()

	var indexer *service.IndexerService
	var rag *service.RAGService
	if cfg.Embedding.Configured() && cfg.Vector.Configured() {
		vectorStore, err := repository.NewVectorStore(&cfg.Vector, cfg.Embedding.Dimensions)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize vector store")
		}
		defer vectorStore.Close()

		if qdrant, ok := vectorStore.(*repository.QdrantStore); ok {
			if err := qdrant.EnsureCollection(ctx); err != nil {
				appLogger.WithError(err).Fatal("Failed to ensure Qdrant collection")
			}
		}

		embeddingService := service.NewEmbeddingService(&cfg.Embedding)
		indexer = service.NewIndexerService(articleRepo, vectorStore, embeddingService, nil, appLogger)
		rag = service.NewRAGService(vectorStore, embeddingService)
	} else {
		appLogger.Warn("Embedding or vector store not configured, article indexing disabled")
	}

	// Initialize storage for project images
	objectStorage, err := storage.NewStorage(&cfg.Storage)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize storage")
	}

	// Initialize chat service
	chatService := service.NewChatService(&cfg.Chat, articleRepo, rag, appLogger)

	// Setup router
	router := api.SetupRouter(cfg, api.Deps{
		Articles: articleRepo,
		Projects: projectRepo,
		Stats:    statsRepo,
		Chat:     chatService,
		Indexer:  indexer,
		Storage:  objectStorage,
		Logger:   appLogger,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
