package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/eft_batch_service/internal/adapters/lock"
	"github.com/SscSPs/eft_batch_service/internal/adapters/messaging"
	portsrepo "github.com/SscSPs/eft_batch_service/internal/core/ports/repositories"
	"github.com/SscSPs/eft_batch_service/internal/core/services"
	"github.com/SscSPs/eft_batch_service/internal/handlers"
	"github.com/SscSPs/eft_batch_service/internal/middleware"
	"github.com/SscSPs/eft_batch_service/internal/platform/config"
	"github.com/SscSPs/eft_batch_service/internal/platform/metrics"
	"github.com/SscSPs/eft_batch_service/internal/platform/policy"
	"github.com/SscSPs/eft_batch_service/internal/repositories/database/pgsql"
	"github.com/SscSPs/eft_batch_service/internal/repositories/memory"
	"github.com/SscSPs/eft_batch_service/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// @title EFT Batch Service API
// @version 1.0
// @description Prepares, approves and exports EFT payment batches.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rolePolicy, err := policy.Load(cfg.RolePolicyFile)
	if err != nil {
		logger.Error("Failed to load role policy", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, cleanup, err := openRepositories(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	var redisClient *redis.Client
	var batchOpts []services.BatchServiceOption
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("Invalid REDIS_URL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		redisClient = redis.NewClient(redisOpts)
		defer redisClient.Close()

		lockOpts := lock.DefaultRedisOptions()
		lockOpts.Expiry = cfg.LockExpiry
		lockOpts.Tries = cfg.LockTries
		batchOpts = append(batchOpts, services.WithLocker(lock.NewRedisLocker(redisClient, lockOpts)))
		logger.Info("Using redis batch locks")
	} else {
		batchOpts = append(batchOpts, services.WithLocker(lock.NewLocalLocker()))
	}

	if cfg.AMQPURL != "" {
		publisher, err := messaging.Dial(cfg.AMQPURL, cfg.AuditQueue, 10*time.Second)
		if err != nil {
			logger.Error("Failed to connect to audit broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer publisher.Close()
		batchOpts = append(batchOpts, services.WithAuditPublisher(publisher))
		logger.Info("Publishing audit events", slog.String("queue", cfg.AuditQueue))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	serviceContainer := services.NewServiceContainer(cfg, repos, rolePolicy, appMetrics, batchOpts...)

	rateLimiter, err := middleware.NewLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "If-Match"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "ETag", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(rateLimiter), middleware.Metrics(appMetrics))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// openRepositories builds the configured storage driver. The returned cleanup
// releases its connections.
func openRepositories(cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		repos, err := memory.NewRepositoryProvider(cfg.MasterDataFile)
		return repos, func() {}, err
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		database.ClosePgxPool(dbPool)
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}
