package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bid-leveler/internal/api"
	"bid-leveler/internal/api/handlers"
	"bid-leveler/internal/preprocess"
	"bid-leveler/internal/repository"
	"bid-leveler/internal/service"
	"bid-leveler/pkg/auth"
	"bid-leveler/pkg/config"
	"bid-leveler/pkg/logger"
	"bid-leveler/pkg/postgres"

	"go.uber.org/zap"
)

// @title Bid Leveler API
// @version 1.0
// @description Upload contractor bids, preprocess them for a context-limited LLM and level them side by side.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT access token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting bid leveler service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	projectRepo := repository.NewProjectRepository(db, appLogger)
	bidRepo := repository.NewBidRepository(db, appLogger)
	comparisonRepo := repository.NewComparisonRepository(db, appLogger)
	usageRepo := repository.NewUsageRepository(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	projectService := service.NewProjectService(projectRepo, appLogger)
	usageService := service.NewUsageService(usageRepo, appLogger)

	llmService, err := service.NewLLMService(&cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	preprocessor := preprocess.New(
		preprocess.WithRecorder(usageService),
		preprocess.WithLogger(appLogger.Named("preprocess")),
		preprocess.WithConcurrency(cfg.Preprocess.Concurrency),
	)

	extractionService := service.NewExtractionService(appLogger)
	bidService := service.NewBidService(projectRepo, bidRepo, extractionService, cfg.Storage.UploadDir, appLogger)
	comparisonService := service.NewComparisonService(
		projectRepo, bidRepo, comparisonRepo,
		preprocessor, llmService, usageService,
		cfg.Preprocess.TotalBudget, appLogger,
	)
	exportService := service.NewExportService(comparisonService, appLogger)
	preprocessService := service.NewPreprocessService(preprocessor, cfg.Preprocess.MaxContentLength, appLogger)

	// Initialize handlers
	app := api.SetupRouter(api.Handlers{
		Auth:       handlers.NewAuthHandler(authService, appLogger),
		Project:    handlers.NewProjectHandler(projectService, appLogger),
		Bid:        handlers.NewBidHandler(bidService, appLogger),
		Comparison: handlers.NewComparisonHandler(comparisonService, exportService, appLogger),
		Preprocess: handlers.NewPreprocessHandler(preprocessService, appLogger),
		Usage:      handlers.NewUsageHandler(usageService, appLogger),
	}, jwtManager, cfg.Server, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
