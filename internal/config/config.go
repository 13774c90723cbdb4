package config

import (
	"os"
	"strconv"
	"time"

	"todo_service/internal/logger"

	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	AppPort     string
	StoreDriver string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	DatabaseURL     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// 0 disables rate limiting
	APIRateLimit  int
	APIRateWindow time.Duration

	RequestTimeout time.Duration

	LogLevel string
	LogJSON  bool
}

// Load reads the config from env, after loading .env if one exists.
func Load() *Config {
	_ = godotenv.Load()

	driver := envOr("STORE_DRIVER", DriverMongo)
	switch driver {
	case DriverMongo, DriverPostgres, DriverMemory:
	default:
		logger.Fatal("unknown STORE_DRIVER", "driver", driver)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if driver == DriverPostgres && dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	return &Config{
		AppPort:         envOr("APP_PORT", "8080"),
		StoreDriver:     driver,
		MongoURI:        envOr("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   envOr("MONGO_DATABASE", "todos"),
		MongoCollection: envOr("MONGO_COLLECTION", "todos"),
		DatabaseURL:     dbURL,
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         envInt("REDIS_DB", 0),
		APIRateLimit:    envInt("API_RATE_LIMIT", 0),
		APIRateWindow:   time.Duration(envInt("API_RATE_WINDOW_SECONDS", 60)) * time.Second,
		RequestTimeout:  time.Duration(envInt("REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
		LogLevel:        envOr("LOG_LEVEL", "info"),
		LogJSON:         os.Getenv("LOG_JSON") == "true",
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt falls back to def when the value is unset, malformed or negative.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
