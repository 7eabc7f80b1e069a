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

	"github.com/campusgrid/timetable-backend/internal/config"
	"github.com/campusgrid/timetable-backend/internal/database"
	"github.com/campusgrid/timetable-backend/internal/handler"
	"github.com/campusgrid/timetable-backend/internal/logger"
	"github.com/campusgrid/timetable-backend/internal/middleware"
	"github.com/campusgrid/timetable-backend/internal/repository"
	"github.com/campusgrid/timetable-backend/internal/router"
	"github.com/campusgrid/timetable-backend/internal/service"
	"github.com/campusgrid/timetable-backend/internal/storage"
	"github.com/campusgrid/timetable-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Timetable Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Object Store ──────────────────────────────────────────────────
	blobs, err := storage.NewS3Store(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure object store")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	departmentRepo := repository.NewDepartmentRepository(pool)
	facultyRepo := repository.NewFacultyRepository(pool)
	roomRepo := repository.NewRoomRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	timetableRepo := repository.NewTimetableRepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	identityService, err := service.NewIdentityService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure identity verification")
	}
	departmentService := service.NewDepartmentService(departmentRepo, rdb, cfg.DepartmentCacheTTL, log)
	feedService := service.NewFeedService(rdb)
	facultyService := service.NewFacultyService(facultyRepo, log)
	roomService := service.NewRoomService(roomRepo, log)
	subjectService := service.NewSubjectService(subjectRepo, log)
	timetableService := service.NewTimetableService(timetableRepo, feedService, log)
	documentService := service.NewDocumentService(documentRepo, blobs, cfg.MaxUploadBytes, cfg.MaxPDFPages, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Faculty:  handler.NewFacultyHandler(facultyService, log),
		Room:     handler.NewRoomHandler(roomService, log),
		Subject:  handler.NewSubjectHandler(subjectService, log),
		Entry:    handler.NewEntryHandler(timetableService, log),
		Document: handler.NewDocumentHandler(documentService, cfg.MaxUploadBytes, log),
		Feed:     handler.NewFeedHandler(feedService, log, cfg.AllowedOrigins),
		System: handler.NewSystemHandler(map[string]handler.HealthCheck{
			"postgres": pool.Ping,
			"redis": func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
		}, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(router.Deps{
		Verifier:      identityService,
		Resolver:      departmentService,
		UploadLimiter: middleware.NewRateLimiter(rdb, "upload", cfg.UploadRateLimit, cfg.UploadRateWindow, log),
	}, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	// No WriteTimeout: it would cut the WebSocket feed.
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
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

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
