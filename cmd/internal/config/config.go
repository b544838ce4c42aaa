package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	DefaultDatabaseURL = "sqlite:///./notes.db"
	DefaultServerAddr  = ":8000"
	DefaultBodyLimit   = "30M"
	DefaultLogLevel    = "info"

	envProduction = "production"
)

type Config struct {
	DatabaseURL     string
	ServerAddr      string
	BodyLimit       string
	LogLevel        log.Lvl
	DBMaxOpenConns  int
	ParameterPrefix string
}

// Load populates the process environment (from .env locally, or from SSM
// Parameter Store when GO_ENV=production) and reads the settings from it.
func Load(store ParameterStore) (*Config, error) {
	if IsProduction() {
		if store == nil {
			return nil, errors.New("config: production environment requires a parameter store")
		}

		n, err := ExportParameters(store, ParameterPath())
		if err != nil {
			return nil, err
		}
		log.Debugf("loaded %d prod environment variables", n)
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the settings from the current environment only.
func FromEnv() (*Config, error) {
	lvl, err := ParseLogLevel(getEnv("LOG_LEVEL", DefaultLogLevel))
	if err != nil {
		return nil, err
	}

	maxConns, err := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "0"))
	if err != nil || maxConns < 0 {
		return nil, fmt.Errorf("config: DB_MAX_OPEN_CONNS must be a non-negative integer, got %q", os.Getenv("DB_MAX_OPEN_CONNS"))
	}

	return &Config{
		DatabaseURL:     getEnv("DATABASE_URL", DefaultDatabaseURL),
		ServerAddr:      getEnv("SERVER_ADDR", DefaultServerAddr),
		BodyLimit:       getEnv("BODY_LIMIT", DefaultBodyLimit),
		LogLevel:        lvl,
		DBMaxOpenConns:  maxConns,
		ParameterPrefix: ParameterPath(),
	}, nil
}

func IsProduction() bool {
	return os.Getenv("GO_ENV") == envProduction
}

func ParseLogLevel(level string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DEBUG, nil
	case "info", "":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	default:
		return 0, fmt.Errorf("config: unknown log level %q", level)
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return fallback
}
