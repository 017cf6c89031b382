package v1

import (
	"github.com/gin-gonic/gin"

	"printstock/internal/domain/catalogs/artprint"
	"printstock/internal/domain/catalogs/distributor"
	"printstock/internal/domain/edition"
	"printstock/internal/domain/taxreport"
	"printstock/internal/infrastructure/http/v1/handlers"
	"printstock/internal/infrastructure/http/v1/middleware"
	"printstock/internal/infrastructure/storage/postgres"
	"printstock/internal/infrastructure/storage/postgres/catalog_repo"
	"printstock/internal/infrastructure/storage/postgres/edition_repo"
	"printstock/internal/inventory"
	"printstock/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// TxManager runs repository operations
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation; nil disables authentication
	JWTValidator middleware.JWTValidator

	// Store is the in-memory inventory
	Store *inventory.Store

	// Reports computes tax-year reports
	Reports *taxreport.Service

	// Audit records catalog mutations
	Audit *postgres.AuditService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Store)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	api := router.Group("/api/v1")
	if cfg.JWTValidator != nil {
		api.Use(middleware.Auth(cfg.JWTValidator))
	}

	baseHandler := handlers.NewBaseHandler()

	printRepo := catalog_repo.NewPrintRepo(cfg.TxManager)
	distributorRepo := catalog_repo.NewDistributorRepo(cfg.TxManager)
	editionRepo := edition_repo.NewRepo(cfg.TxManager)

	// --- PRINTS ---
	{
		service := artprint.NewService(printRepo, cfg.TxManager)
		editions := edition.NewService(editionRepo, printRepo)
		handler := handlers.NewPrintHandler(baseHandler, service, editions, cfg.Store, cfg.Audit)

		group := api.Group("/prints")
		RegisterCatalogRoutes(group, handler)
		group.POST("/:id/editions", handler.RegisterRun)
		group.GET("/:id/editions", handler.ListEditions)
	}

	// --- DISTRIBUTORS ---
	{
		service := distributor.NewService(distributorRepo, cfg.TxManager)
		handler := handlers.NewDistributorHandler(baseHandler, service, cfg.Store, cfg.Audit)

		group := api.Group("/distributors")
		RegisterCatalogRoutes(group, handler)
		group.POST("/:id/favorite", handler.ToggleFavorite)
	}

	// --- EDITIONS ---
	{
		handler := handlers.NewEditionHandler(baseHandler, cfg.Store)

		group := api.Group("/editions")
		group.GET("", handler.List)
		group.GET("/:id", handler.Get)
		group.PATCH("/:id", handler.Update)
		group.PATCH("", handler.BatchUpdate)
	}

	// --- REPORTS ---
	{
		handler := handlers.NewReportsHandler(baseHandler, cfg.Reports, cfg.Store)

		group := api.Group("/reports")
		group.GET("/tax-year", handler.TaxYear)
		group.GET("/tax-year/export", handler.TaxYearCSV)
	}

	// --- SYNC ---
	{
		handler := handlers.NewSyncHandler(baseHandler, postgres.NewSyncLogRepo(cfg.TxManager))

		group := api.Group("/sync")
		group.GET("/runs", handler.ListRuns)
	}

	return router
}
