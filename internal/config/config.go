// Package config loads application configuration from the environment,
// with defaults suitable for local development.
package config

import (
	"os"
	"strconv"
)

// Config is the application configuration.
type Config struct {
	Environment   string
	ServerAddress string

	TableName string
	TopicARN  string

	UploadBucket string
	AWSRegion    string

	JWTSecret string
	JWTIssuer string

	EventQueueSize int
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		ServerAddress:  getEnv("SERVER_ADDRESS", ":8080"),
		TableName:      getEnv("TABLE_NAME", "blog-dev"),
		TopicARN:       os.Getenv("NOTIFICATION_TOPIC_ARN"),
		UploadBucket:   getEnv("UPLOAD_BUCKET", "blog-uploads-dev"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		JWTSecret:      getEnv("JWT_SECRET", "development-secret-change-in-production"),
		JWTIssuer:      getEnv("JWT_ISSUER", "blog-backend"),
		EventQueueSize: getEnvInt("EVENT_QUEUE_SIZE", 64),
	}
}

// IsProduction reports whether the app runs with production settings.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
