package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

type EnviornmentVariable struct {
	GO_ENV string
	// Server
	HOST string
	PORT int
	// Database
	DB_DRIVER    string
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	DB_PATH      string
	SEED_TODOS   bool
	// Logging
	LOG_LEVEL  string
	LOG_FORMAT string
	// Rate limiting
	RATE_LIMIT_REQUESTS int
	RATE_LIMIT_WINDOW   time.Duration
}

// Addr is the single address the server binds to
func (e *EnviornmentVariable) Addr() string {
	return fmt.Sprintf("%s:%d", e.HOST, e.PORT)
}

// PostgresDSN builds the key/value DSN understood by both pgx and lib/pq
func (e *EnviornmentVariable) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		e.DB_HOST,
		e.DB_USER_NAME,
		e.DB_PASSWORD,
		e.DB_NAME,
		e.DB_PORT,
		e.DB_SSL_MODE,
	)
}

func Get() (*EnviornmentVariable, error) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 5050
	}

	rateLimit, err := strconv.Atoi(getEnv("RATE_LIMIT_REQUESTS", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REQUESTS: %w", err)
	}

	rateWindow, err := time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}

	seed, err := strconv.ParseBool(getEnv("SEED_TODOS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_TODOS: %w", err)
	}

	driver := getEnv("DB_DRIVER", "postgres")
	switch driver {
	case "postgres", "sqlite", "pq":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	envVariables := &EnviornmentVariable{
		GO_ENV: os.Getenv("GO_ENV"),
		HOST:   getEnv("HOST", "localhost"),
		PORT:   port,
		// Database
		DB_DRIVER:    driver,
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      getEnv("DB_NAME", "todos"),
		DB_HOST:      getEnv("DB_HOST", "localhost"),
		DB_PORT:      getEnv("DB_PORT", "5432"),
		DB_SSL_MODE:  getEnv("DB_SSL_MODE", "disable"),
		DB_PATH:      getEnv("DB_PATH", "todos.db"),
		SEED_TODOS:   seed,
		// Logging
		LOG_LEVEL:  getEnv("LOG_LEVEL", "info"),
		LOG_FORMAT: getEnv("LOG_FORMAT", "json"),
		// Rate limiting
		RATE_LIMIT_REQUESTS: rateLimit,
		RATE_LIMIT_WINDOW:   rateWindow,
	}

	return envVariables, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
