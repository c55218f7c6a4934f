package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gramsehat/backend/internal/audit"
	"github.com/gramsehat/backend/internal/booking"
	"github.com/gramsehat/backend/internal/chat"
	"github.com/gramsehat/backend/internal/config"
	"github.com/gramsehat/backend/internal/directory"
	"github.com/gramsehat/backend/internal/handler"
	"github.com/gramsehat/backend/internal/i18n"
	"github.com/gramsehat/backend/internal/middleware"
	"github.com/gramsehat/backend/internal/pdf"
	"github.com/gramsehat/backend/internal/profile"
	"github.com/gramsehat/backend/internal/records"
	"github.com/gramsehat/backend/internal/settings"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("booking_store", cfg.Booking.Store),
		zap.String("settings_store", cfg.Settings.Store),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	checks := map[string]handler.Check{}

	// PostgreSQL backs the settings store and the audit trail when configured
	var pool *pgxpool.Pool
	if cfg.NeedsDatabase() {
		pool, err = newPool(startupCtx, cfg.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer pool.Close()
		logger.Info("Successfully connected to database")

		if cfg.Database.AuditEnabled {
			if _, err := pool.Exec(startupCtx, audit.Schema); err != nil {
				logger.Fatal("Failed to create audit schema", zap.Error(err))
			}
		}
		checks["database"] = pool.Ping
	}

	// Redis backs booking sessions when configured
	var redisClient *redis.Client
	if cfg.Booking.Store == config.StoreRedis {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(startupCtx).Err(); err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		logger.Info("Successfully connected to redis", zap.String("addr", cfg.Redis.Addr))

		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	localizer, err := i18n.New()
	if err != nil {
		logger.Fatal("Failed to load translations", zap.Error(err))
	}

	// Settings
	var settingsStore settings.Store = settings.NewMemoryStore()
	if cfg.Settings.Store == config.StorePostgres {
		pgStore := settings.NewPostgresStore(pool, logger)
		if err := pgStore.Migrate(startupCtx); err != nil {
			logger.Fatal("Failed to migrate settings store", zap.Error(err))
		}
		settingsStore = pgStore
	}
	settingsService := settings.NewService(settingsStore, logger)
	lang := settingsService.Init(startupCtx, cfg.Settings.DeviceLocale)
	logger.Info("Language initialised", zap.String("language", lang))

	// Record and appointment changes are audited; PostgreSQL keeps them when enabled
	var auditDB *pgxpool.Pool
	if cfg.Database.AuditEnabled {
		auditDB = pool
	}
	auditor := audit.NewLogger(auditDB, logger)

	// Directory and booking
	dir := directory.New()
	catalog := directory.NewCatalog()

	var sessionStore booking.SessionStore = booking.NewMemoryStore(cfg.Booking.SessionTTL)
	if redisClient != nil {
		sessionStore = booking.NewRedisStore(redisClient, cfg.Booking.SessionTTL, logger)
	}
	bookingService := booking.NewService(dir, sessionStore, auditor, logger)

	// Sahayak
	engine := chat.NewEngine(localizer, cfg.Chat.Latency, cfg.Chat.RevealInterval, logger)
	chatService := chat.NewService(engine, logger)

	// Records
	recordsService := records.NewService(auditor, logger)
	reports := pdf.NewPDFGenerator(logger)

	// Chat responses outlive the request that started them but not the server
	baseCtx, baseCancel := context.WithCancel(context.Background())
	defer baseCancel()

	handlers := handler.Handlers{
		Health:    handler.NewHealthHandler(checks, logger),
		Directory: handler.NewDirectoryHandler(dir, catalog, reports, logger),
		Booking:   handler.NewBookingHandler(bookingService, logger),
		Chat:      handler.NewChatHandler(baseCtx, chatService, settingsService.Language, logger),
		Records:   handler.NewRecordsHandler(recordsService, reports, localizer, settingsService.Language, logger),
		Settings:  handler.NewSettingsHandler(settingsService, logger),
		Profile: handler.NewProfileHandler(
			profile.NewCatalog(localizer),
			profile.NewNotifications(logger),
			settingsService.Language,
			logger,
		),
	}

	rateLimiter := middleware.NewRateLimiter(cfg.Chat.RateLimit, cfg.Chat.RateBurst, logger)
	stopCleanup := make(chan struct{})
	go rateLimiter.Run(stopCleanup)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	r := gin.New()

	// Add recovery middleware (must be first)
	r.Use(middleware.RecoveryMiddleware(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !allowsAnyOrigin(cfg.Server.AllowedOrigins),
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLoggingMiddleware(logger))
	r.Use(middleware.ErrorLoggingMiddleware(logger))

	handler.RegisterRoutes(r, handlers, rateLimiter.Middleware())

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Stop streaming responses first so open SSE requests can finish
	chatService.Close()
	baseCancel()
	close(stopCleanup)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// newLogger builds the production logger in production and the development
// logger otherwise, at the configured level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	if cfg.Logging.Format == "console" {
		zcfg.Encoding = "console"
	}

	return zcfg.Build()
}

func newPool(ctx context.Context, db config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(db.URL)
	if err != nil {
		return nil, err
	}
	if db.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(db.MaxOpenConns)
	}
	poolCfg.MaxConnLifetime = db.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
