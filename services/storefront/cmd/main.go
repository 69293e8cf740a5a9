package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/vinabike/storefront/pkg/config"
	"github.com/vinabike/storefront/pkg/db"
	"github.com/vinabike/storefront/pkg/kafka"
	"github.com/vinabike/storefront/pkg/utils"
	"github.com/vinabike/storefront/services/storefront/internal/mercadopago"
	"github.com/vinabike/storefront/services/storefront/internal/repository"
	"github.com/vinabike/storefront/services/storefront/internal/service"
	"github.com/vinabike/storefront/services/storefront/internal/transport/http"
	"github.com/vinabike/storefront/services/storefront/internal/transport/http/handler"
	kafkaTransport "github.com/vinabike/storefront/services/storefront/internal/transport/kafka"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not found: %v\n", err)
	}

	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(config.LoggerConfig{
		Level:       cfg.LogLevel,
		Env:         cfg.Env,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	var shutdownTracer func(context.Context) error
	if cfg.Tracing.Enabled {
		tp, err := utils.InitTracer(ctx, utils.TracerConfig{
			ServiceName: cfg.ServiceName,
			Environment: cfg.Env,
			Endpoint:    cfg.Tracing.Endpoint,
		})
		if err != nil {
			logger.Fatal("Failed to init tracer", zap.Error(err))
		}
		shutdownTracer = tp.Shutdown
	}

	pool, err := db.NewPostgresDB(ctx, db.PoolConfig{
		URL:      cfg.Postgres.URL,
		MaxConns: cfg.Postgres.MaxConns,
		MinConns: cfg.Postgres.MinConns,
	})
	if err != nil {
		logger.Fatal("Error creating postgres pool", zap.Error(err))
	}
	defer pool.Close()

	productRepository := repository.NewProductRepository(pool, logger)
	settingsRepository := repository.NewSettingsRepository(pool, logger)
	orderRepository := repository.NewOrderRepository(pool, logger)

	gateway := mercadopago.NewClient(mercadopago.Config{
		BaseURL: cfg.MercadoPago.BaseURL,
		Timeout: cfg.MercadoPago.Timeout,
		Breaker: utils.BreakerSettings{
			MaxRequests:  cfg.MercadoPago.Breaker.MaxRequests,
			Interval:     cfg.MercadoPago.Breaker.Interval,
			Timeout:      cfg.MercadoPago.Breaker.Timeout,
			MinRequests:  cfg.MercadoPago.Breaker.MinRequests,
			FailureRatio: cfg.MercadoPago.Breaker.FailureRatio,
		},
	}, logger)

	feedService := service.NewFeedService(productRepository, settingsRepository, service.StoreDefaults{
		Name:            cfg.Store.Name,
		URL:             cfg.Store.URL,
		Brand:           cfg.Store.Brand,
		Description:     cfg.Store.Description,
		ProductCategory: cfg.Store.ProductCategory,
		Currency:        cfg.Store.Currency,
	}, logger)

	if cfg.Redis.Enabled && cfg.Feed.CacheTTL > 0 {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
		})
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Warn("Error closing redis client", zap.Error(err))
			}
		}()

		feedService = service.NewCachedFeedService(feedService, rdb, cfg.Feed.CacheTTL, logger)
	}

	var publisher service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Timeout, logger)
		if err != nil {
			logger.Fatal("Error creating kafka producer", zap.Error(err))
		}
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Warn("Error closing kafka producer", zap.Error(err))
			}
		}()

		publisher = kafkaTransport.NewPublisher(producer, cfg.Kafka.Topic)
	}

	preferenceService := service.NewPreferenceService(settingsRepository, gateway, cfg.Store.Currency, logger)
	webhookService := service.NewWebhookService(settingsRepository, orderRepository, gateway, publisher, cfg.Kafka.Timeout, logger)

	app := http.NewApp(cfg.ServiceName, cfg.HTTP.Timeout)
	http.RegisterRoutes(app, &http.Handlers{
		Feed:       handler.NewFeedHandler(feedService, logger),
		Preference: handler.NewPreferenceHandler(preferenceService, logger),
		Webhook:    handler.NewWebhookHandler(webhookService, logger),
	}, http.LimiterConfig{
		Max:        cfg.Limiter.Max,
		Expiration: cfg.Limiter.Expiration,
	})

	go func() {
		logger.Info("HTTP service listening", zap.String("port", cfg.HTTP.Port))
		if err := app.Listen(cfg.HTTP.Port); err != nil {
			logger.Fatal("Error listening on HTTP port", zap.String("port", cfg.HTTP.Port), zap.Error(err))
		}
	}()

	<-ctx.Done()

	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Error shutting down HTTP app", zap.Error(err))
	} else {
		logger.Info("HTTP app stopped gracefully")
	}

	if shutdownTracer != nil {
		if err := shutdownTracer(shutdownCtx); err != nil {
			logger.Error("Error shutting down telemetry", zap.Error(err))
		}
	}
}
