package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	inventoryapp "github.com/armoryhq/backend/internal/application/inventory"
	"github.com/armoryhq/backend/internal/infrastructure/cache"
	"github.com/armoryhq/backend/internal/infrastructure/config"
	"github.com/armoryhq/backend/internal/infrastructure/logger"
	"github.com/armoryhq/backend/internal/infrastructure/persistence"
	"github.com/armoryhq/backend/internal/infrastructure/storage"
	"github.com/armoryhq/backend/internal/interfaces/http/handler"
	"github.com/armoryhq/backend/internal/interfaces/http/middleware"
	"github.com/armoryhq/backend/internal/interfaces/http/router"
	"github.com/armoryhq/backend/internal/interfaces/http/view"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Armory",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	itemRepo := persistence.NewGormItemRepository(db.DB)
	slotRepo := persistence.NewGormSlotRepository(db.DB)
	sellerRepo := persistence.NewGormSellerRepository(db.DB)
	instanceRepo := persistence.NewGormItemInstanceRepository(db.DB)

	media := newMediaStore(cfg, log)
	counters := newCounterCache(cfg, log)

	// Initialize application services
	writerCfg := inventoryapp.WriterConfig{
		SecurityCode: cfg.Security.Code,
		MediaFolder:  cfg.Storage.MediaFolder,
	}
	itemReader := inventoryapp.NewItemReader(itemRepo, slotRepo, instanceRepo)
	itemWriter := inventoryapp.NewItemWriter(itemRepo, slotRepo, instanceRepo, media, writerCfg)
	sellerService := inventoryapp.NewSellerService(sellerRepo, instanceRepo, writerCfg)
	listingService := inventoryapp.NewListingService(instanceRepo, itemRepo, sellerRepo)
	dashboardService := inventoryapp.NewDashboardService(itemRepo, sellerRepo, slotRepo, instanceRepo, counters, log)

	views, err := view.NewRenderer(log)
	if err != nil {
		log.Fatal("Failed to parse templates", zap.Error(err))
	}

	// Initialize Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/healthz", healthHandler(db))

	router.NewRouter(engine).
		Register(handler.NewDashboardHandler(views, dashboardService)).
		Register(handler.NewItemHandler(views, itemReader, itemWriter)).
		Register(handler.NewSellerHandler(views, sellerService)).
		Register(handler.NewListingHandler(views, listingService)).
		Register(handler.NewSlotHandler(views, slotRepo)).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newMediaStore returns the S3-backed media store when object storage is
// configured, otherwise an in-memory stub so local development works
// without a bucket. Production config validation rejects a missing bucket.
func newMediaStore(cfg *config.Config, log *zap.Logger) inventoryapp.MediaStore {
	if cfg.Storage.Bucket == "" {
		log.Warn("Object storage not configured, using in-memory media store")
		return storage.NewStubMediaStore("")
	}

	store, err := storage.NewS3MediaStore(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize media store", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.EnsureBucket(ctx); err != nil {
		log.Fatal("Failed to ensure media bucket", zap.Error(err))
	}

	log.Info("Media store ready", zap.String("bucket", cfg.Storage.Bucket))
	return store
}

// newCounterCache prefers Redis and degrades to an in-process cache when
// Redis is not configured or unreachable at startup.
func newCounterCache(cfg *config.Config, log *zap.Logger) inventoryapp.CounterCache {
	if !cfg.Redis.Enabled() {
		return cache.NewInMemoryCounterCache(cfg.Redis.CacheTTL)
	}

	c, err := cache.NewRedisCounterCache(&cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory counter cache", zap.Error(err))
		return cache.NewInMemoryCounterCache(cfg.Redis.CacheTTL)
	}

	log.Info("Counter cache backed by Redis", zap.String("addr", cfg.Redis.Addr()))
	return c
}

// healthHandler reports process and database liveness.
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
