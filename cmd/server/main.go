package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/quiz-engine/internal/cache"
	"github.com/SAP-F-2025/quiz-engine/internal/config"
	"github.com/SAP-F-2025/quiz-engine/internal/handlers"
	"github.com/SAP-F-2025/quiz-engine/internal/quiz"
	"github.com/SAP-F-2025/quiz-engine/internal/repositories/postgres"
	"github.com/SAP-F-2025/quiz-engine/internal/services"
	"github.com/SAP-F-2025/quiz-engine/internal/utils"
	"github.com/SAP-F-2025/quiz-engine/internal/validator"
	"github.com/SAP-F-2025/quiz-engine/pkg"
	"github.com/gin-gonic/gin"
)

const evictionInterval = time.Minute

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewDefaultLogger().LogError(err, "Failed to load config")
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)
	slogger := utils.ToSlogLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.LogError(err, "Failed to initialize database")
		os.Exit(1)
	}
	if err := pkg.Migrate(db); err != nil {
		logger.LogError(err, "Failed to migrate database")
		os.Exit(1)
	}

	// Redis is optional, history reads fall back to the database
	var cacheService cache.CacheService
	redisClient, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, attempt history will not be cached", "error", err)
	} else {
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, logger)
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.LogError(err, "Failed to create event publisher, falling back to in-process")
		publisher = cfg.Events.FallbackPublisher(slogger)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.LogError(err, "Failed to close event publisher")
		}
	}()

	gaps := quiz.NewGapCounter(cfg.Engine.GapOpen, cfg.Engine.GapClose)
	v := validator.New(gaps)
	repo := postgres.NewRepository(db)

	historyService := services.NewHistoryService(repo, cacheService, publisher, v, slogger, cfg.Engine.HistoryCacheTTL)
	exportService := services.NewExportService(historyService, slogger)
	reportService := services.NewErrorReportService(repo, publisher, v, slogger)
	playerService := services.NewQuizPlayerService(repo, historyService, publisher, nil, v, slogger, services.PlayerConfig{
		AllowAnswerReveal: cfg.Engine.AllowAnswerReveal,
		AudioMaxPlays:     cfg.Engine.AudioMaxPlays,
		Gaps:              gaps,
		IdleTTL:           cfg.Engine.SessionIdleTTL,
	})
	go playerService.Run(ctx, evictionInterval)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(utils.ContextLogger(logger))

	handlers.NewHandlerManager(playerService, historyService, exportService, reportService, logger).SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting quiz engine", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.LogError(err, "Server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down quiz engine")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.LogError(err, "Graceful shutdown failed")
	}
}
