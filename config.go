package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/YodHeVauHe/ShopWithKylie/database"
	aws_pkg "github.com/YodHeVauHe/ShopWithKylie/pkg/aws"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront backend.
type Config struct {
	Port     string
	Postgres database.PostgresConfig
	RedisURL string
	// SNS topic for order and discount events
	OrderSNSTopicARN string
	// Per-IP request budget
	RateLimitPerMinute int
	RateLimitBurst     int
}

// LoadConfig reads configuration from environment variables with optional
// Secrets Manager override. The resolved Postgres settings are handed to the
// connector as-is; nothing downstream reads POSTGRES_* again.
func LoadConfig() (*Config, error) {
	// Absent .env just means the environment is already populated.
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Postgres: database.PostgresConfig{
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Name:     os.Getenv("POSTGRES_DB"),
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379/0"),
		OrderSNSTopicARN:   os.Getenv("ORDER_SNS_TOPIC_ARN"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 40),
	}

	// Override DB credentials from Secrets Manager when running on AWS
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := aws_pkg.LoadAWSConfig(context.Background()); err == nil {
			sm := aws_pkg.NewSecretsClient(awsCfg)

			if dbjson, err := sm.GetSecret(context.Background(), "shopwithkylie/DB_CREDENTIALS"); err == nil && dbjson != "" {
				var m map[string]string
				if err := json.Unmarshal([]byte(dbjson), &m); err == nil {
					if v, ok := m["POSTGRES_USER"]; ok && v != "" {
						cfg.Postgres.User = v
					}
					if v, ok := m["POSTGRES_PASSWORD"]; ok && v != "" {
						cfg.Postgres.Password = v
					}
					if v, ok := m["POSTGRES_DB"]; ok && v != "" {
						cfg.Postgres.Name = v
					}
					if v, ok := m["POSTGRES_HOST"]; ok && v != "" {
						cfg.Postgres.Host = v
					}
					if v, ok := m["POSTGRES_PORT"]; ok && v != "" {
						cfg.Postgres.Port = v
					}
				}
			}
		}
	}

	if cfg.Postgres.User == "" || cfg.Postgres.Password == "" || cfg.Postgres.Name == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var n int
		if _, err := fmt.Sscanf(val, "%d", &n); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
