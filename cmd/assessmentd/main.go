package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/gustavodinniz/loan-flow/internal/assessment/application/usecase"
	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/service"
	"github.com/gustavodinniz/loan-flow/internal/assessment/infrastructure/antifraud"
	"github.com/gustavodinniz/loan-flow/internal/assessment/infrastructure/bureau"
	"github.com/gustavodinniz/loan-flow/internal/assessment/infrastructure/config"
	"github.com/gustavodinniz/loan-flow/internal/assessment/infrastructure/messaging"
	pkgkafka "github.com/gustavodinniz/loan-flow/pkg/kafka"
	"github.com/gustavodinniz/loan-flow/pkg/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})
	slog.SetDefault(logger)

	logger.Info("starting credit-assessment-service",
		"brokers", cfg.Kafka.Brokers,
		"intake_topic", cfg.Kafka.IntakeTopic,
		"result_topic", cfg.Kafka.ResultTopic,
	)

	// Redis client for the bureau score cache.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	logger.Info("connected to redis", "addr", cfg.Redis.Addr)

	// Wire infrastructure adapters.
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := messaging.NewKafkaEventPublisher(kafkaProducer, cfg.Kafka.ResultTopic, logger)

	bureauClient := bureau.NewClient(cfg.BureauBaseURL, cfg.HTTPTimeout)
	scoreCache := bureau.NewRedisScoreCache(redisClient, cfg.ScoreCacheTTL)
	antiFraudClient := antifraud.NewClient(cfg.AntiFraudURL, cfg.HTTPTimeout)

	// Wire the use case.
	chain := service.NewRuleChain(service.DefaultRules()...)
	assessUC := usecase.NewAssessCredit(
		bureauClient,
		antiFraudClient,
		scoreCache,
		publisher,
		chain,
		service.DefaultTiers(),
		logger,
	)

	// Consume intake events.
	handler := messaging.NewApplicationReceivedHandler(assessUC, logger)
	consumer := pkgkafka.NewConsumer(pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
	}, cfg.Kafka.IntakeTopic, handler.Handle, logger)
	defer consumer.Close()

	if err := consumer.Start(ctx); err != nil {
		logger.Error("consumer error", "error", err)
		os.Exit(1)
	}

	logger.Info("credit-assessment-service stopped")
}
