// Package config loads the application settings from the environment,
// honoring a local .env file when present.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting.
type Config struct {
	Addr         string  // HTTP listen address
	DataDir      string  // directory for the file storage backend
	Storage      string  // "file" or "redis"
	RedisAddr    string  // redis host:port for sessions / redis storage
	OtelHost     string  // OTLP collector; empty means stdout traces
	ServiceFee   float64 // surcharge on customer checkout
	StrictDecode bool    // fail on corrupt stored collections
	Seed         bool    // load demo data into empty collections on start
}

// Load reads configuration. Missing values fall back to defaults suited
// for a local run.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:         getString("MAELED_ADDR", ":8080"),
		DataDir:      getString("MAELED_DATA_DIR", "data"),
		Storage:      getString("MAELED_STORAGE", "file"),
		RedisAddr:    getString("MAELED_REDIS_ADDR", ""),
		OtelHost:     getString("MAELED_OTEL_HOST", ""),
		ServiceFee:   getFloat("MAELED_SERVICE_FEE", 2.00),
		StrictDecode: getBool("MAELED_STRICT_DECODE", false),
		Seed:         getBool("MAELED_SEED", true),
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
