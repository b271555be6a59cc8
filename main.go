// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"sitter-booking/cmd"
	"sitter-booking/internal/data/repository"
	"sitter-booking/internal/gateway"
	"sitter-booking/internal/scheduler"
	"sitter-booking/internal/wire"
	"sitter-booking/pkg/database"
	"sitter-booking/pkg/utils"

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

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Payment gateway client
	gw := gateway.NewStripeGateway(config.Gateway.SecretKey, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, gw, config, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background reconciliation sweep
	sweeper := scheduler.New(app.Service.Reconcile, config.Sweep.Interval, config.Sweep.AuthorizedDeadline, logger)
	go sweeper.Start(ctx)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(ctx, app.Router, config.App.Port, logger)
}
