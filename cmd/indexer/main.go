package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/doubletutu/portfolio-api/internal/config"
	"github.com/doubletutu/portfolio-api/internal/logger"
	"github.com/doubletutu/portfolio-api/internal/repository"
	"github.com/doubletutu/portfolio-api/internal/service"
)

// Reindexes the article vector index from the command line, either a single
// article or the whole store. The API server exposes the same operation at
// POST /api/admin/index-articles.
func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to config file")
	articleID := flag.String("article", "", "index a single article by id (default: all)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		File:        cfg.Log.File,
		ServiceName: "portfolio-indexer",
	})
	logger.SetDefaultLogger(appLogger)

	if !cfg.Embedding.Configured() {
		appLogger.Fatal("Embedding API key is not configured")
	}
	if !cfg.Vector.Configured() {
		appLogger.Fatal("Vector store is not configured")
	}

	articleRepo := repository.NewArticleRepository(cfg.Data.ArticlesPath)

	vectorStore, err := repository.NewVectorStore(&cfg.Vector, cfg.Embedding.Dimensions)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize vector store")
	}
	defer vectorStore.Close()

	ctx := context.Background()
	if qdrant, ok := vectorStore.(*repository.QdrantStore); ok {
		if err := qdrant.EnsureCollection(ctx); err != nil {
			appLogger.WithError(err).Fatal("Failed to ensure Qdrant collection")
		}
	}

	embeddingService := service.NewEmbeddingService(&cfg.Embedding)
	indexer := service.NewIndexerService(articleRepo, vectorStore, embeddingService, nil, appLogger)

	if *articleID != "" {
		if err := indexer.IndexArticle(ctx, *articleID); err != nil {
			appLogger.WithError(err).WithField(logger.FieldArticleID, *articleID).Fatal("Failed to index article")
		}
		appLogger.WithField(logger.FieldArticleID, *articleID).Info("Article indexed")
		return
	}

	report, err := indexer.IndexAll(ctx)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to index articles")
	}
	appLogger.WithFields(logger.Fields{
		"indexed": report.Indexed,
		"failed":  report.Failed,
	}).Info("Indexing complete")
}
