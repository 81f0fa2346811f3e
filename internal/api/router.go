package api

import (
	"github.com/gin-gonic/gin"

	"github.com/doubletutu/portfolio-api/internal/api/handler"
	"github.com/doubletutu/portfolio-api/internal/api/middleware"
	"github.com/doubletutu/portfolio-api/internal/config"
	"github.com/doubletutu/portfolio-api/internal/logger"
	"github.com/doubletutu/portfolio-api/internal/repository"
	"github.com/doubletutu/portfolio-api/internal/service"
	"github.com/doubletutu/portfolio-api/internal/storage"
)

// Deps carries everything the router needs. Indexer may be nil when the
// embedding or vector configuration is missing; the admin endpoint reports
// that instead of the server refusing to start.
type Deps struct {
	Articles *repository.ArticleRepository
	Projects *repository.ProjectRepository
	Stats    *repository.StatsRepository
	Chat     *service.ChatService
	Indexer  *service.IndexerService
	Storage  storage.ObjectStorage
	Logger   *logger.Logger
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	// Set Gin mode
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	articleHandler := handler.NewArticleHandler(deps.Articles, deps.Logger)
	projectHandler := handler.NewProjectHandler(deps.Projects, deps.Logger)
	statsHandler := handler.NewStatsHandler(deps.Stats, deps.Logger)
	chatHandler := handler.NewChatHandler(deps.Chat, deps.Logger)
	uploadHandler := handler.NewUploadHandler(deps.Storage, deps.Logger)
	adminHandler := handler.NewAdminHandler(deps.Indexer, deps.Logger)

	// Health check
	r.GET("/health", healthHandler.Health)

	// Locally stored project images are served as static files.
	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		r.Static(cfg.Storage.PublicURL, cfg.Storage.LocalDir)
	}

	api := r.Group("/api")
	{
		// Articles
		api.GET("/articles", articleHandler.List)
		api.POST("/articles", articleHandler.Create)
		api.PATCH("/articles", articleHandler.UpdateTitle)
		api.DELETE("/articles", articleHandler.Delete)
		api.POST("/articles/view", articleHandler.IncrementView)
		api.POST("/articles/upload", articleHandler.Upload)

		// Projects
		api.GET("/projects", projectHandler.List)
		api.PATCH("/projects", projectHandler.Patch)

		// Visit stats
		api.GET("/stats", statsHandler.Get)
		api.POST("/stats", statsHandler.Update)

		// Chat
		api.POST("/chat", chatHandler.Chat)

		// Uploads
		api.POST("/upload/image", uploadHandler.UploadImage)

		// Admin
		api.POST("/admin/index-articles", adminHandler.IndexArticles)
	}

	return r
}
