package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string
	HTTPPort  string
	MongoURI  string
	Database  string
	JWTSecret string
	RateRPS   int
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Env:       get("APP_ENV", "dev"),
		HTTPPort:  get("HTTP_PORT", "8000"),
		MongoURI:  get("MONGODB_URI", "mongodb://localhost:27017"),
		Database:  get("MONGODB_DATABASE", "bloglist"),
		JWTSecret: get("JWT_SECRET", "changeme-secret"),
		RateRPS:   getInt("RATE_RPS", 100),
	}
	// Tests run against a separate database.
	if cfg.Env == "test" {
		cfg.MongoURI = get("TEST_MONGODB_URI", cfg.MongoURI)
		cfg.Database = get("TEST_MONGODB_DATABASE", cfg.Database+"_test")
	}
	return cfg
}

func get(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
