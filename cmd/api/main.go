package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"go-agency-backoffice/config"
	_ "go-agency-backoffice/docs" // Important for Swagger
	v1 "go-agency-backoffice/internal/delivery/http/v1"
	"go-agency-backoffice/internal/repository/postgres"
	"go-agency-backoffice/internal/usecase"
	"go-agency-backoffice/pkg/database"
	"go-agency-backoffice/pkg/logger"
	"go-agency-backoffice/pkg/storage"
)

// @title           Agency Back Office API
// @version         1.0
// @description     Recruitment agency back-office: candidate matching and document exports.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting agency back office", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Object Storage
	store, err := storage.NewStore(context.Background(), storage.Config{
		Provider:        storage.Provider(cfg.StorageProvider),
		AccessKeyID:     cfg.StorageAccessKey,
		SecretAccessKey: cfg.StorageSecretKey,
		Region:          cfg.StorageRegion,
		Bucket:          cfg.StorageBucket,
		Endpoint:        cfg.StorageEndpoint,
		PresignTTL:      cfg.PresignTTL,
	})
	if err != nil {
		logger.Log.Error("Failed to initialize object storage", "error", err)
		os.Exit(1)
	}

	// 5. Setup Repositories
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)

	// 6. Setup UseCases
	validate := validator.New()
	matchingUC := usecase.NewMatchingUsecase(candidateRepo, jobRepo, validate, nil)
	exportUC := usecase.NewExportUsecase(candidateRepo, store, nil, cfg.LogoPath)
	archiveUC := usecase.NewArchiveUsecase(candidateRepo, store)
	documentUC := usecase.NewDocumentUsecase(candidateRepo, store)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		Candidates: candidateRepo,
		Jobs:       jobRepo,
		Matching:   matchingUC,
		Export:     exportUC,
		Archive:    archiveUC,
		Documents:  documentUC,
		Config:     cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
