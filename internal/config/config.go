package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-inbox-api/internal/pkg/validate"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string `validate:"required,numeric"`
	AppEnv  string

	AWSRegion      string `validate:"required"`
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	SNSRegion   string
	SNSTopicARN string // empty disables event publishing

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Messages string `validate:"required"`
	Counters string `validate:"required"`
}

// Load reads all configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Messages: getEnv("DYNAMO_TABLE_MESSAGES", "inbx_msg"),
			Counters: getEnv("DYNAMO_TABLE_COUNTERS", "inbx_counters"),
		},

		SNSRegion:   getEnv("SNS_REGION", "us-east-1"),
		SNSTopicARN: getEnv("SNS_TOPIC_ARN", ""),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
