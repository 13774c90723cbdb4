package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"APP_PORT", "STORE_DRIVER", "MONGO_URI", "MONGO_DATABASE", "MONGO_COLLECTION",
		"DATABASE_URL", "REDIS_ADDR", "REDIS_DB", "API_RATE_LIMIT", "API_RATE_WINDOW_SECONDS",
		"REQUEST_TIMEOUT_SECONDS", "LOG_LEVEL", "LOG_JSON",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.AppPort != "8080" {
		t.Fatalf("AppPort = %q; want 8080", cfg.AppPort)
	}
	if cfg.StoreDriver != DriverMongo {
		t.Fatalf("StoreDriver = %q; want %q", cfg.StoreDriver, DriverMongo)
	}
	if cfg.MongoDatabase != "todos" || cfg.MongoCollection != "todos" {
		t.Fatalf("mongo target = %s/%s; want todos/todos", cfg.MongoDatabase, cfg.MongoCollection)
	}
	if cfg.APIRateLimit != 0 || cfg.APIRateWindow != time.Minute {
		t.Fatalf("rate limit = %d per %s", cfg.APIRateLimit, cfg.APIRateWindow)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("RequestTimeout = %s", cfg.RequestTimeout)
	}
	if cfg.LogJSON {
		t.Fatalf("LogJSON should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/todos")
	t.Setenv("API_RATE_LIMIT", "30")
	t.Setenv("API_RATE_WINDOW_SECONDS", "5")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("LOG_JSON", "true")

	cfg := Load()

	if cfg.AppPort != "9090" || cfg.StoreDriver != DriverPostgres {
		t.Fatalf("unexpected port/driver: %s %s", cfg.AppPort, cfg.StoreDriver)
	}
	if cfg.DatabaseURL != "postgres://localhost/todos" {
		t.Fatalf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.APIRateLimit != 30 || cfg.APIRateWindow != 5*time.Second {
		t.Fatalf("rate limit = %d per %s", cfg.APIRateLimit, cfg.APIRateWindow)
	}
	if cfg.RedisDB != 0 {
		t.Fatalf("malformed REDIS_DB should fall back to 0, got %d", cfg.RedisDB)
	}
	if !cfg.LogJSON {
		t.Fatalf("LogJSON should be true")
	}
}
