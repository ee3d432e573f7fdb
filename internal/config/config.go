package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	ListenAddr  string
	HTTPPort    string
	Environment string

	// Database
	DatabaseURL string

	// Heartbeat: warning threshold; sessions silent for twice this long
	// are forcibly closed.
	HeartbeatWarn time.Duration
}

// Load reads configuration from the environment, after loading a .env
// file when one is present next to the binary.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", "0.0.0.0:5050"),
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		HeartbeatWarn: time.Duration(getEnvInt("HEARTBEAT_WARN_SECONDS", 15)) * time.Second,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.HeartbeatWarn <= 0 {
		return nil, fmt.Errorf("HEARTBEAT_WARN_SECONDS must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
