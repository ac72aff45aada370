package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type KafkaConfig struct {
	Brokers         []string
	ConsumerGroup   string
	AssessmentTopic string
	DecisionTopic   string
}

type Config struct {
	Kafka         KafkaConfig
	IntakeBaseURL string
	HTTPTimeout   time.Duration
	MetricsPort   int
	LogLevel      string
	LogFormat     string
	ServiceName   string
}

func Load() Config {
	return Config{
		Kafka: KafkaConfig{
			Brokers:         strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			ConsumerGroup:   getEnv("KAFKA_CONSUMER_GROUP", "loan-decision-engine"),
			AssessmentTopic: getEnv("KAFKA_ASSESSMENT_TOPIC", "credit-assessment-completed"),
			DecisionTopic:   getEnv("KAFKA_DECISION_TOPIC", "loan-decision-made"),
		},
		IntakeBaseURL: getEnv("INTAKE_BASE_URL", "http://localhost:8080"),
		HTTPTimeout:   getEnvDuration("HTTP_CLIENT_TIMEOUT", 5*time.Second),
		MetricsPort:   getEnvInt("METRICS_PORT", 9090),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		ServiceName:   "loan-decision-engine",
	}
}

func (c Config) MetricsAddr() string {
	return fmt.Sprintf(":%d", c.MetricsPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
