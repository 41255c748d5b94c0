package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hkk4567/webbanhang/app/echo-server/router"
	"github.com/hkk4567/webbanhang/business/category"
	"github.com/hkk4567/webbanhang/business/product"
	"github.com/hkk4567/webbanhang/business/recommender"
	"github.com/hkk4567/webbanhang/internal/middleware"
	"github.com/hkk4567/webbanhang/internal/repository/artifact"
	mysqlRepo "github.com/hkk4567/webbanhang/internal/repository/mysql"
	"github.com/hkk4567/webbanhang/internal/rest"
	"github.com/hkk4567/webbanhang/pkg/config"
	"github.com/hkk4567/webbanhang/pkg/database"
	redisdb "github.com/hkk4567/webbanhang/pkg/database/redis"
	"github.com/hkk4567/webbanhang/pkg/logger"
	"github.com/hkk4567/webbanhang/pkg/metrics"
	"github.com/hkk4567/webbanhang/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting recommender server", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitMySQL(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Init artifact store
	store, err := newArtifactStore(cfg)
	if err != nil {
		logger.Fatal("Failed to init artifact store", "error", err)
	}

	// Init repo
	productRepo := mysqlRepo.NewProductRepository(db)
	categoryRepo := mysqlRepo.NewCategoryRepository(db)
	interactionRepo := mysqlRepo.NewInteractionRepository(db)

	// Load the trained model. The server is useless without one; run the
	// trainer first.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	arts, err := recommender.LoadArtifacts(loadCtx, store)
	cancelLoad()
	if err != nil {
		logger.Fatal("Failed to load model artifacts", "error", err)
	}
	logger.Info("Model artifacts loaded",
		"run_id", arts.Meta.RunID,
		"rank", arts.Meta.Rank,
		"trained_at", arts.Meta.TrainedAt,
	)

	// Init service
	engine := recommender.NewRecommenderEngine(arts, productRepo)
	trainer := recommender.NewTrainer(productRepo, interactionRepo, store, recommender.TrainingConfig{
		Rank:  cfg.Model.Rank,
		Alpha: cfg.Model.Alpha,
		Tune:  cfg.Model.Tune,
		Grid:  recommender.DefaultGrid(),
	})
	productService := product.NewProductService(productRepo)
	categoryService := category.NewCategoryService(categoryRepo)

	// Init handler
	recoHandler := rest.NewRecommendationHandler(engine, cfg.Model.DefaultNumRecs, cfg.Model.DefaultNumSimilar, cfg.Model.Alpha)
	adminHandler := rest.NewAdminHandler(trainer)
	productHandler := rest.NewProductHandler(productService)
	categoryHandler := rest.NewCategoryHandler(categoryService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
			"run_id": engine.Meta().RunID,
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupRecommendationRoutes(api, recoHandler)
	router.SetupAdminRoutes(api, adminHandler)
	router.SetupProductRoutes(api, productHandler)
	router.SetupCategoryRoutes(api, categoryHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
	logger.Sync()
}

func newArtifactStore(cfg *config.Config) (recommender.ArtifactStore, error) {
	if cfg.Model.ArtifactBackend == "redis" {
		client, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		return artifact.NewRedisStore(client), nil
	}

	return artifact.NewFSStore(cfg.Model.Dir)
}
