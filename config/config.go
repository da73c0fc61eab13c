package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Transfer TransferConfig
	Sweeper  SweeperConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthConfig selects how callers are identified and which accounts may
// create projects.
type AuthConfig struct {
	// Mode is "firebase" (verify ID tokens) or "header" (trust X-Account-Id,
	// development only).
	Mode string
	// FirebaseCredentialsPath is required when Mode is "firebase".
	FirebaseCredentialsPath string
	// CreatorAllowlist is a comma-separated list of account ids allowed to
	// create projects when no creators table is available.
	CreatorAllowlist string
}

type TransferConfig struct {
	// GatewayURL is the base URL of the external value-transfer service.
	GatewayURL string
	// RatePerSecond and Burst bound outbound transfer calls.
	RatePerSecond float64
	Burst         int
}

type SweeperConfig struct {
	Enabled bool
	// CronSpec uses the 6-field (seconds) format.
	CronSpec string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			DSN: getEnv("DB_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			Mode:                    getEnv("AUTH_MODE", "header"),
			FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			CreatorAllowlist:        getEnv("CREATOR_ALLOWLIST", ""),
		},
		Transfer: TransferConfig{
			GatewayURL:    getEnv("TRANSFER_GATEWAY_URL", ""),
			RatePerSecond: getEnvAsFloat("TRANSFER_RATE_PER_SECOND", 20),
			Burst:         getEnvAsInt("TRANSFER_BURST", 40),
		},
		Sweeper: SweeperConfig{
			Enabled:  getEnv("SWEEPER_ENABLED", "true") == "true",
			CronSpec: getEnv("SWEEPER_CRON", "0 * * * * *"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Auth.Mode != "firebase" && c.Auth.Mode != "header" {
		return fmt.Errorf("AUTH_MODE must be \"firebase\" or \"header\"")
	}

	if c.Auth.Mode == "firebase" && c.Auth.FirebaseCredentialsPath == "" {
		return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when AUTH_MODE=firebase")
	}

	if c.Transfer.GatewayURL == "" {
		return fmt.Errorf("TRANSFER_GATEWAY_URL is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
