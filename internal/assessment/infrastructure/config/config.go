package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type KafkaConfig struct {
	Brokers       []string
	ConsumerGroup string
	IntakeTopic   string
	ResultTopic   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type Config struct {
	Kafka         KafkaConfig
	Redis         RedisConfig
	BureauBaseURL string
	AntiFraudURL  string
	HTTPTimeout   time.Duration
	ScoreCacheTTL time.Duration
	LogLevel      string
	LogFormat     string
	ServiceName   string
}

func Load() Config {
	return Config{
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "credit-assessment-service"),
			IntakeTopic:   getEnv("KAFKA_INTAKE_TOPIC", "loan-application-received"),
			ResultTopic:   getEnv("KAFKA_RESULT_TOPIC", "credit-assessment-completed"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		BureauBaseURL: getEnv("BUREAU_BASE_URL", "http://localhost:8081"),
		AntiFraudURL:  getEnv("ANTIFRAUD_BASE_URL", "http://localhost:8082"),
		HTTPTimeout:   getEnvDuration("HTTP_CLIENT_TIMEOUT", 5*time.Second),
		ScoreCacheTTL: getEnvDuration("SCORE_CACHE_TTL", 24*time.Hour),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		ServiceName:   "credit-assessment-service",
	}
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
