package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/outboxrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs(logger)

	db, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		logger.Error("connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	err = db.AutoMigrate(
		&courierrepo.CourierDTO{},
		&courierrepo.StoragePlaceDTO{},
		&orderrepo.OrderDTO{},
		&outboxrepo.MessageDTO{},
	)
	if err != nil {
		logger.Error("migrate database schema", slog.Any("error", err))
		os.Exit(1)
	}

	app, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		logger.Error("build composition root", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("close adapters", slog.Any("error", err))
		}
	}()

	basketConsumer, err := app.CreateBasketEventsConsumer()
	if err != nil {
		logger.Error("create basket events consumer", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := basketConsumer.Close(); err != nil {
			logger.Error("close basket events consumer", slog.Any("error", err))
		}
	}()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		logger.Error("start scheduled jobs", slog.Any("error", err))
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	app.CreateHTTPServer().RegisterRoutes(e)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		basketConsumer.Consume(ctx)
	}()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown http server", slog.Any("error", err))
	}

	<-consumerDone
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file, using environment variables")
	}

	return cmd.Config{
		HTTPPort:                  envOrDefault("HTTP_PORT", "8080"),
		DBHost:                    envOrDefault("DB_HOST", "localhost"),
		DBPort:                    envOrDefault("DB_PORT", "5432"),
		DBUser:                    envOrDefault("DB_USER", "postgres"),
		DBPassword:                envOrDefault("DB_PASSWORD", "postgres"),
		DBName:                    envOrDefault("DB_NAME", "dispatch"),
		DBSslMode:                 envOrDefault("DB_SSLMODE", "disable"),
		GeoServiceURL:             envOrDefault("GEO_SERVICE_URL", "http://localhost:8081"),
		KafkaBrokers:              envOrDefault("KAFKA_BROKERS", "localhost:9092"),
		KafkaTopic:                envOrDefault("KAFKA_ORDER_EVENTS_TOPIC", "order.events"),
		KafkaConsumerGroup:        envOrDefault("KAFKA_CONSUMER_GROUP", "dispatch"),
		KafkaBasketConfirmedTopic: envOrDefault("KAFKA_BASKET_CONFIRMED_TOPIC", "baskets.events"),
		OutboxBatchSize:           envIntOrDefault("OUTBOX_BATCH_SIZE", 10, logger),
	}
}

func envOrDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOrDefault(key string, fallback int, logger *slog.Logger) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		logger.Warn("invalid integer in environment, using default",
			slog.String("key", key), slog.String("value", value))
		return fallback
	}
	return parsed
}
