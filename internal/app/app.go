package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Armmuh/naija-coffee-oasis/internal/config"
	"github.com/Armmuh/naija-coffee-oasis/internal/event"
	handler "github.com/Armmuh/naija-coffee-oasis/internal/handler/http"
	"github.com/Armmuh/naija-coffee-oasis/internal/payment"
	postgresrepo "github.com/Armmuh/naija-coffee-oasis/internal/repository/postgres"
	redisrepo "github.com/Armmuh/naija-coffee-oasis/internal/repository/redis"
	"github.com/Armmuh/naija-coffee-oasis/internal/service"
	"github.com/Armmuh/naija-coffee-oasis/pkg/database"
	"github.com/Armmuh/naija-coffee-oasis/pkg/health"
	"github.com/Armmuh/naija-coffee-oasis/pkg/httpclient"
	pkgkafka "github.com/Armmuh/naija-coffee-oasis/pkg/kafka"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize the Postgres pool.
	pgCfg := database.DefaultPostgresConfig()
	pgCfg.Host = cfg.PostgresHost
	pgCfg.Port = cfg.PostgresPort
	pgCfg.User = cfg.PostgresUser
	pgCfg.Password = cfg.PostgresPassword
	pgCfg.DBName = cfg.PostgresDB
	pgCfg.SSLMode = cfg.PostgresSSLMode

	pool, err := database.NewPostgresPool(ctx, &pgCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to Postgres",
		slog.String("host", cfg.PostgresHost),
		slog.String("database", cfg.PostgresDB),
	)

	// Initialize the Redis client.
	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("host", cfg.RedisHost),
		slog.Int("db", cfg.RedisDB),
	)

	// Initialize the Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Payment gateway client behind a circuit breaker.
	baseClient := httpclient.New(httpclient.DefaultConfig())
	breakerCfg := httpclient.DefaultCircuitBreakerConfig("payment-gateway")
	gatewayClient := httpclient.NewCircuitBreakerClient(baseClient, breakerCfg, logger)
	gateway := payment.NewGateway(gatewayClient, cfg.PaymentGatewayURL, logger)

	// Build the dependency graph.
	cartTTL := time.Duration(cfg.CartTTL) * time.Hour
	cartRepo := redisrepo.NewCartRepository(rdb, cartTTL)
	productRepo := postgresrepo.NewProductRepository(pool)
	orderRepo := postgresrepo.NewOrderRepository(pool)

	eventProducer := event.NewProducer(producer, logger)

	cartService := service.NewCartService(cartRepo, eventProducer, logger)
	catalogService := service.NewCatalogService(productRepo, eventProducer, logger)
	checkoutService := service.NewCheckoutService(cartService, orderRepo, gateway, eventProducer, logger)
	orderService := service.NewOrderService(orderRepo, eventProducer, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	router := handler.NewRouter(
		cartService,
		catalogService,
		checkoutService,
		orderService,
		healthHandler,
		logger,
		cfg.PprofAllowedCIDRs,
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		pool:       pool,
		rdb:        rdb,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Close the Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	// Close the Redis client.
	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	// Close the Postgres pool.
	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return nil
}
