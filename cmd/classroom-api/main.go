package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/classroom-api/api/swagger"
	"github.com/noah-isme/classroom-api/internal/handler"
	"github.com/noah-isme/classroom-api/internal/repository"
	"github.com/noah-isme/classroom-api/internal/router"
	"github.com/noah-isme/classroom-api/internal/service"
	"github.com/noah-isme/classroom-api/pkg/cache"
	"github.com/noah-isme/classroom-api/pkg/config"
	"github.com/noah-isme/classroom-api/pkg/database"
	"github.com/noah-isme/classroom-api/pkg/export"
	"github.com/noah-isme/classroom-api/pkg/logger"
	"github.com/noah-isme/classroom-api/pkg/validation"
)

// @title Classroom API
// @version 1.0.0
// @description Students, sections, schedules, evaluations, reports and spreadsheet import.
// @BasePath /api
// @schemes http

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		logr.Info("database migrated")
	}

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, analytics cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close() //nolint:errcheck
		}
	}

	metrics := service.NewMetricsService()
	validator := validation.New()
	cacheSvc := service.NewCacheService(
		repository.NewCacheRepository(redisClient),
		metrics,
		cfg.Cache.TTL,
		logr,
		cfg.Cache.Enabled && redisClient != nil,
	)

	studentRepo := repository.NewStudentRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	pdf := export.NewPDFExporter(export.PDFOptions{FontPath: cfg.Reports.FontPath, PageSize: cfg.Reports.PageSize})
	if !pdf.UTF8() {
		logr.Warn("no UTF-8 font loaded for PDF documents, Arabic text will not render",
			zap.String("font_path", cfg.Reports.FontPath))
	}

	studentSvc := service.NewStudentService(studentRepo, validator, cacheSvc, metrics, logr)
	sectionSvc := service.NewSectionService(sectionRepo, validator, cacheSvc, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, validator)
	importSvc := service.NewImportService(studentRepo, cacheSvc, metrics, logr)
	analyticsSvc := service.NewAnalyticsService(studentRepo, sectionRepo, cacheSvc, metrics, cfg.Notifications.Reminders, logr)
	reportSvc := service.NewReportService(pdf, export.NewCSVExporter(), validator, metrics, logr)
	certificateSvc := service.NewCertificateService(pdf, validator, logr)

	engine := router.New(cfg, logr, metrics, router.Handlers{
		Students:  handler.NewStudentHandler(studentSvc),
		Sections:  handler.NewSectionHandler(sectionSvc),
		Schedules: handler.NewScheduleHandler(scheduleSvc),
		Imports:   handler.NewImportHandler(importSvc, cfg.Import.MaxFileSizeBytes),
		Analytics: handler.NewAnalyticsHandler(analyticsSvc),
		Reports:   handler.NewReportHandler(reportSvc, certificateSvc),
		Metrics:   handler.NewMetricsHandler(metrics, db),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
