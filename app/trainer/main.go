package main

import (
	"context"
	"flag"
	"log"

	"github.com/hkk4567/webbanhang/business/recommender"
	"github.com/hkk4567/webbanhang/internal/repository/artifact"
	mysqlRepo "github.com/hkk4567/webbanhang/internal/repository/mysql"
	"github.com/hkk4567/webbanhang/pkg/config"
	"github.com/hkk4567/webbanhang/pkg/database"
	redisdb "github.com/hkk4567/webbanhang/pkg/database/redis"
	"github.com/hkk4567/webbanhang/pkg/logger"
)

// Batch trainer: loads all orders and the product catalog, fits the hybrid
// model, and persists one artifact generation for the server to pick up.
func main() {
	tune := flag.Bool("tune", false, "run the hyperparameter grid sweep before the final fit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting training run", "tune", *tune)

	db, err := database.InitMySQL(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	var store recommender.ArtifactStore
	if cfg.Model.ArtifactBackend == "redis" {
		client, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer redisdb.CloseRedisClient(client)
		store = artifact.NewRedisStore(client)
	} else {
		store, err = artifact.NewFSStore(cfg.Model.Dir)
		if err != nil {
			logger.Fatal("Failed to init artifact store", "error", err)
		}
	}

	trainer := recommender.NewTrainer(
		mysqlRepo.NewProductRepository(db),
		mysqlRepo.NewInteractionRepository(db),
		store,
		recommender.TrainingConfig{
			Rank:  cfg.Model.Rank,
			Alpha: cfg.Model.Alpha,
			Tune:  *tune || cfg.Model.Tune,
			Grid:  recommender.DefaultGrid(),
		},
	)

	report, err := trainer.Train(context.Background())
	if err != nil {
		logger.Fatal("Training failed", "error", err)
	}

	logger.Info("Training complete",
		"run_id", report.RunID,
		"rank", report.Rank,
		"alpha", report.Alpha,
		"duration", report.Duration.String(),
	)
	logger.Sync()
}
