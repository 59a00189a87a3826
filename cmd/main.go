package main

import (
	"context"
	"errors"
	"laporantdx/backend/internal/api/handler"
	"laporantdx/backend/internal/artifact"
	"laporantdx/backend/internal/config"
	"laporantdx/backend/internal/document"
	"laporantdx/backend/internal/evidence"
	"laporantdx/backend/internal/feed"
	"laporantdx/backend/internal/form"
	"laporantdx/backend/internal/localization"
	"laporantdx/backend/internal/logger"
	"laporantdx/backend/internal/mirror"
	"laporantdx/backend/internal/storage"
	"laporantdx/backend/internal/submission"
	"laporantdx/backend/internal/telegram"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupDependencies(ctx context.Context, cfg *config.Config, log *logger.Logger) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect PostgreSQL", "error", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to connect Redis", "addr", cfg.RedisAddr, "error", err)
	}

	log.Info("Database and Redis connections established")
	return db, rdb
}

func main() {
	// The zap logger needs the config, so startup errors go to the standard logger.
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting laporan backend", "env", cfg.Env, "addr", cfg.HTTPAddr)
	if cfg.InsecureSessionSecret {
		appLogger.Warn("SESSION_SECRET is not set, using an insecure development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Persistence
	db, rdb := setupDependencies(ctx, cfg, appLogger)
	store := storage.NewStorageService(db, rdb)
	if err := store.Migrate(); err != nil {
		appLogger.Fatal("Failed to run migrations", "error", err)
	}

	// 2. External collaborators
	googleOpts := evidence.ClientOptions(cfg.GoogleCredentials)
	objects, err := evidence.NewGCSStore(ctx, cfg.EvidenceBucket, cfg.EvidenceCDNDomain, googleOpts...)
	if err != nil {
		appLogger.Fatal("Failed to create evidence store", "error", err)
	}
	defer objects.Close()

	appender, err := mirror.NewSheetsAppender(ctx, googleOpts...)
	if err != nil {
		appLogger.Fatal("Failed to create Sheets client", "error", err)
	}
	sheet := mirror.NewSheetsMirror(appender, cfg.SpreadsheetID, cfg.SheetRange)

	localizer, err := localization.NewLocalizer()
	if err != nil {
		appLogger.Fatal("Failed to load locales", "error", err)
	}

	artifacts, err := artifact.NewStore(cfg.ArtifactDir)
	if err != nil {
		appLogger.Fatal("Failed to prepare artifact directory", "error", err)
	}

	hooks := []submission.PostCommitHook{
		submission.MirrorHook(sheet),
		submission.FeedHook(store),
	}
	if cfg.TelegramEnabled() {
		bot, err := telegram.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			appLogger.Warn("Telegram notifications disabled", "error", err)
		} else {
			hooks = append(hooks, submission.NotifyHook(telegram.NewNotifier(bot, cfg.TelegramChatID, localizer, appLogger)))
		}
	}

	renderer := document.NewRenderer()
	submissions := submission.NewService(
		form.NewNormalizer(),
		evidence.NewUploader(objects, appLogger),
		store,
		renderer,
		artifacts,
		appLogger,
		hooks...,
	)

	// 3. Live feed
	hub := feed.NewHub(appLogger)
	go hub.Run(ctx)
	hub.StartPubSubListener(ctx, store)

	// 4. HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger(appLogger))

	h := handler.NewHandler(handler.Dependencies{
		Submissions:   submissions,
		Storage:       store,
		Renderer:      renderer,
		Artifacts:     artifacts,
		Hub:           hub,
		Localizer:     localizer,
		Health:        store,
		SessionSecret: []byte(cfg.SessionSecret),
		SecureCookies: cfg.IsProduction(),
		Log:           appLogger,
	})
	h.Register(r, handler.NewRateLimiter(cfg.SubmitRatePerMinute, cfg.SubmitRateBurst))

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", "error", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown failed", "error", err)
	}
	if err := rdb.Close(); err != nil {
		appLogger.Warn("Redis close failed", "error", err)
	}
}
