// @title picdesc API
// @version 1.0
// @description Extracts pictures from PDF documents and describes them with a vision-language model.
// @BasePath /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	_ "picdesc/docs"
	"picdesc/internal/config"
	"picdesc/internal/handler"
	"picdesc/internal/logging"
	"picdesc/internal/pipeline"
	"picdesc/internal/port"
	"picdesc/internal/repository/memory"
	"picdesc/internal/repository/postgres"
	"picdesc/internal/router"
	"picdesc/internal/service"
	s3storage "picdesc/internal/storage/s3"
	"picdesc/web"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(&cfg.Log)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize conversion store
	var repo port.ConversionRepository
	switch cfg.Store.Driver {
	case "postgres":
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		repo = postgres.NewConversionRepo(db)
	default:
		repo = memory.NewConversionRepo(cfg.Store.MemorySize, cfg.Store.MemoryTTL)
	}

	// Initialize archive storage
	var archive port.ObjectStorage
	if cfg.S3.Enabled {
		archive, err = s3storage.NewArchive(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize converter and services
	converter := pipeline.NewFromConfig(cfg)
	conversionSvc := service.NewConversionService(converter, repo, archive, &cfg.S3)

	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	// Initialize handlers
	uiH := handler.NewUIHandler(conversionSvc, tmpl, handler.UISettingsFromConfig(cfg))
	conversionH := handler.NewConversionHandler(conversionSvc)
	healthH := handler.NewHealthHandler(converter.Backend(), repo)

	r := router.Setup(cfg.CORS.AllowedOrigins, uiH, conversionH, healthH)

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"addr":    cfg.Server.Port,
			"store":   cfg.Store.Driver,
			"docling": cfg.Docling.BaseURL,
			"model":   cfg.Pipeline.RepoID,
		}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
