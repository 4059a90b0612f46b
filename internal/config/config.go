package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	// StoreBackend selects the session repository implementation:
	// "memory", "redis" or "postgres".
	StoreBackend string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string

	// In-memory sweeper tuning. Sessions idle longer than
	// MaxInactivity are removed every SweepInterval.
	SweepInterval time.Duration
	MaxInactivity time.Duration
}

func Load() Config {

	// Missing .env is fine: real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := Config{

		AppPort: getEnv("APP_PORT", "3000"),

		StoreBackend: getEnv("STORE_BACKEND", "memory"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SweepInterval: getDuration("SESSION_SWEEP_INTERVAL", time.Minute),
		MaxInactivity: getDuration("SESSION_MAX_INACTIVITY", 5*time.Minute),
	}

	return cfg

}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
