// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"order-management/cmd"
	"order-management/internal/data/repository"
	"order-management/internal/jobs"
	"order-management/internal/wire"
	"order-management/pkg/database"
	"order-management/pkg/token"
	"order-management/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Token codec: secret + algoritma dari config, sekali di startup
	maker, err := token.NewMaker(config.JWT.Secret, config.JWT.Algorithm)
	if err != nil {
		logger.Fatal("Failed to init token maker", zap.Error(err))
	}

	// Redis untuk antrian job order
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	defer rdb.Close()

	queue := jobs.NewQueue(rdb, logger)

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, maker, queue, config, logger)

	// Shutdown context untuk server dan worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background progression worker
	worker := jobs.NewWorker(
		repos.Order,
		queue,
		config.Worker.Concurrency,
		time.Duration(config.Worker.ProcessingSeconds)*time.Second,
		logger,
	)
	go worker.Run(ctx)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(ctx, app.Router, config.App.Port, logger)
}
