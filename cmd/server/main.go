package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	stdlog "github.com/rs/zerolog/log"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/config"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/database"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/handler"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/logger"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/middleware"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/observability"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/repository"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/router"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/service"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/validator"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal().Err(err).Msg("Invalid configuration")
	}

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("version", version).
		Msg("Starting Banco Infantil school backend")

	// ─── Error Reporting ───────────────────────────────────────────────
	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Environment, version)
	if err != nil {
		log.Warn().Err(err).Msg("Sentry disabled")
	}
	defer flushSentry()

	// ─── Initialize Validator ──────────────────────────────────────────
	if err := validator.Setup(); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up validator")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis (optional) ───────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	var limiter middleware.Limiter
	if rdb != nil {
		defer rdb.Close()
		limiter = middleware.NewRedisLimiter(rdb, cfg.AuthRateLimit, time.Minute)
	} else {
		limiter = middleware.NewMemoryLimiter(ctx, cfg.AuthRateLimit, time.Minute)
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	schoolRepo := repository.NewSchoolRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	quizRepo := repository.NewQuizRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	schoolService := service.NewSchoolService(pool, schoolRepo, classRepo, authService, log)
	rosterService := service.NewRosterService(classRepo, studentRepo)
	contentService := service.NewContentService(pool, quizRepo, taskRepo, messageRepo, log)
	dashboardService := service.NewDashboardService(dashboardRepo)
	reportService := service.NewReportService(reportRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		School:    handler.NewSchoolHandler(schoolService, log),
		Roster:    handler.NewRosterHandler(rosterService, log),
		Content:   handler.NewContentHandler(contentService, log),
		Dashboard: handler.NewDashboardHandler(dashboardService, log),
		Report:    handler.NewReportHandler(reportService, log),
		System:    handler.NewSystemHandler(pool, rdb, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg, limiter, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// Stops the in-memory limiter sweep.
	cancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
