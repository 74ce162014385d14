package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	MongoURI         string
	DBName           string
	JWTSecret        string
	GinMode          string
	LogMode          string
	QueryTimeout     time.Duration
	MongoMaxPoolSize uint64
	CORSOrigins      []string
}

// LoadEnv reads a .env file into the process environment if one exists.
func LoadEnv() {
	_ = godotenv.Load()
}

func GetEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func Load() (Config, error) {
	cfg := Config{
		Port:        GetEnv("PORT", "4000"),
		MongoURI:    GetEnv("MONGO_URI", ""),
		DBName:      GetEnv("DB_NAME", "b2b_portal"),
		JWTSecret:   GetEnv("JWT_SECRET", ""),
		GinMode:     GetEnv("GIN_MODE", "release"),
		LogMode:     GetEnv("LOG_MODE", "production"),
		CORSOrigins: splitCSV(GetEnv("CORS_ORIGINS", "*")),
	}

	timeout, err := time.ParseDuration(GetEnv("QUERY_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("QUERY_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return Config{}, errors.New("QUERY_TIMEOUT must be positive")
	}
	cfg.QueryTimeout = timeout

	pool, err := strconv.ParseUint(GetEnv("MONGO_MAX_POOL_SIZE", "100"), 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("MONGO_MAX_POOL_SIZE: %w", err)
	}
	cfg.MongoMaxPoolSize = pool

	if cfg.MongoURI == "" {
		return Config{}, errors.New("MONGO_URI not set in environment variables")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET not set in environment variables")
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
