package config

import (
	"os"
	"strconv"
	"time"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// StoreBackend names the snapshot store to use: memory, redis or postgres.
func StoreBackend() string {
	return GetEnv("STORE_BACKEND", BackendMemory)
}

// RedisConfig returns host, port, password and database index
func RedisConfig() (string, string, string, int) {
	host := GetEnv("R_HOST", "redis")
	port := GetEnv("R_PORT", "6379")
	password := GetEnv("R_PASS", "")
	db := GetEnvInt("R_DB", 0)
	return host, port, password, db
}

// SnapshotTTL is how long Redis keeps a saved snapshot. Zero keeps it forever.
func SnapshotTTL() time.Duration {
	return GetEnvDuration("SNAPSHOT_TTL", 0)
}

// DatabaseConfig returns host, port, user, password, database name
func DatabaseConfig() (string, string, string, string, string) {
	host := GetEnv("DB_HOST", "localhost")
	port := GetEnv("DB_PORT", "5432")
	user := GetEnv("DB_USER", "")
	password := GetEnv("DB_PASSWORD", "")
	name := GetEnv("DB_NAME", "filmapp")
	return host, port, user, password, name
}

// TelegramRate is the number of outgoing Telegram calls allowed per second.
func TelegramRate() float64 {
	v, err := strconv.ParseFloat(GetEnv("TG_RATE_PER_SEC", "25"), 64)
	if err != nil || v <= 0 {
		return 25
	}
	return v
}

// GetEnv retrieves values from environment files based on the key it matches,
// returns a string (value) if not empty
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(GetEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}
