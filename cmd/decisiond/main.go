package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gustavodinniz/loan-flow/internal/decision/application/usecase"
	"github.com/gustavodinniz/loan-flow/internal/decision/domain/service"
	"github.com/gustavodinniz/loan-flow/internal/decision/infrastructure/config"
	"github.com/gustavodinniz/loan-flow/internal/decision/infrastructure/intake"
	"github.com/gustavodinniz/loan-flow/internal/decision/infrastructure/messaging"
	"github.com/gustavodinniz/loan-flow/internal/decision/metrics"
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

	logger.Info("starting loan-decision-engine",
		"brokers", cfg.Kafka.Brokers,
		"assessment_topic", cfg.Kafka.AssessmentTopic,
		"decision_topic", cfg.Kafka.DecisionTopic,
		"metrics_port", cfg.MetricsPort,
	)

	// Wire infrastructure adapters.
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := messaging.NewKafkaEventPublisher(kafkaProducer, cfg.Kafka.DecisionTopic, logger)
	intakeClient := intake.NewStatusClient(cfg.IntakeBaseURL, cfg.HTTPTimeout)

	// Wire the use case.
	decisionSvc := service.NewDecisionService(service.NewLoanTermsCalculator())
	m := metrics.New()
	decideUC := usecase.NewDecideLoan(decisionSvc, publisher, intakeClient, m, logger)

	// Metrics endpoint.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server starting", "addr", cfg.MetricsAddr())
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("metrics server error: %w", err)
		}
	}()

	// Consume assessment results.
	handler := messaging.NewAssessmentCompletedHandler(decideUC, logger)
	consumer := pkgkafka.NewConsumer(pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
	}, cfg.Kafka.AssessmentTopic, handler.Handle, logger)
	defer consumer.Close()

	go func() {
		if err := consumer.Start(ctx); err != nil {
			errCh <- fmt.Errorf("consumer error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", "error", err)
	}

	logger.Info("loan-decision-engine stopped")
}
