package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Revaluation engine tuning.
	RevalWorkerCount          int
	RevalAccountTimeout       time.Duration
	RevalMaterialityThreshold decimal.Decimal

	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "fx-revaluation-app")
	viper.SetDefault("REVAL_WORKER_COUNT", 8)
	viper.SetDefault("REVAL_ACCOUNT_TIMEOUT", "30s")
	viper.SetDefault("REVAL_MATERIALITY_THRESHOLD", "0")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_DURATION: %w", err)
	}
	cfg.JWTExpiryDuration = jwtExpiry

	cfg.RevalWorkerCount = viper.GetInt("REVAL_WORKER_COUNT")
	if cfg.RevalWorkerCount < 1 {
		return nil, fmt.Errorf("REVAL_WORKER_COUNT must be at least 1, got %d", cfg.RevalWorkerCount)
	}

	accountTimeout, err := time.ParseDuration(viper.GetString("REVAL_ACCOUNT_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid REVAL_ACCOUNT_TIMEOUT: %w", err)
	}
	cfg.RevalAccountTimeout = accountTimeout

	threshold, err := decimal.NewFromString(viper.GetString("REVAL_MATERIALITY_THRESHOLD"))
	if err != nil {
		return nil, fmt.Errorf("invalid REVAL_MATERIALITY_THRESHOLD: %w", err)
	}
	if threshold.IsNegative() {
		return nil, fmt.Errorf("REVAL_MATERIALITY_THRESHOLD must not be negative, got %s", threshold)
	}
	cfg.RevalMaterialityThreshold = threshold

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
