package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront-api/cmd/api/infrastructure"
	"storefront-api/internal/adapter/cache"
	postgresrepo "storefront-api/internal/adapter/db/postgres"
	ginhandler "storefront-api/internal/adapter/gin/handler"
	"storefront-api/internal/adapter/gin/middleware"
	"storefront-api/internal/adapter/repository/cached"
	"storefront-api/internal/config"
	"storefront-api/internal/metrics"
	productuc "storefront-api/internal/usecase/product"
	useruc "storefront-api/internal/usecase/user"
	redisclient "storefront-api/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	DB             *gorm.DB
	RedisClient    *redisclient.Client
	UserUC         useruc.Usecase
	ProductUC      productuc.Usecase
	RateLimiter    *middleware.RateLimiter
	UserHandler    *ginhandler.UserHandler
	ProductHandler *ginhandler.ProductHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	// Counter sink and alerting
	sink := metrics.NewRedisSink(rdb.Client, l)
	alerter := metrics.NewAlerter(sink, l)

	// User repository with cache-aside read path
	userCache := cache.NewRedisUserCache(
		rdb.Client,
		time.Duration(cfg.Redis.CacheTTL)*time.Second,
		l,
	)
	userRepo := cached.NewCachedUserRepository(postgresrepo.NewUserRepoPG(db, l), userCache, l)

	productRepo := postgresrepo.NewProductRepoPG(db, l)

	// Use cases
	userUC := useruc.New(userRepo, sink, alerter, l)
	productUC := productuc.New(productRepo, sink, alerter, l)

	// Rate limiter
	rateLimiter := middleware.NewRateLimiter(
		rdb.Client,
		middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstCapacity:     cfg.RateLimit.BurstCapacity,
			Enabled:           cfg.RateLimit.Enabled,
		},
		l,
	)

	return &Container{
		Config:         cfg,
		Logger:         l,
		DB:             db,
		RedisClient:    rdb,
		UserUC:         userUC,
		ProductUC:      productUC,
		RateLimiter:    rateLimiter,
		UserHandler:    ginhandler.NewUserHandler(userUC, l),
		ProductHandler: ginhandler.NewProductHandler(productUC, l),
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
