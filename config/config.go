package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Data source names accepted in DATA_SOURCE.
const (
	SourceBuiltin  = "builtin"
	SourceJSON     = "json"
	SourceYAML     = "yaml"
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataSource string
	DataPath   string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	APIPort          string
	DefaultPageLimit int
	MaxRetries       int
	RetryDelayMs     int
	LogLevel         string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{
		DataSource: strings.ToLower(getEnv("DATA_SOURCE", "")),
		DataPath:   getEnv("DATA_PATH", ""),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "preschool"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "preschool"),
		PostgresDB:       getEnv("POSTGRES_DB", "preschool_warehouse"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		APIPort:          getEnv("API_PORT", "8080"),
		DefaultPageLimit: getEnvInt("DEFAULT_PAGE_LIMIT", 10),
		MaxRetries:       getEnvInt("MAX_RETRIES", 3),
		RetryDelayMs:     getEnvInt("RETRY_DELAY_MS", 500),
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
	cfg.DataSource = cfg.ResolveSource()
	if cfg.DefaultPageLimit <= 0 {
		cfg.DefaultPageLimit = 10
	}
	return cfg
}

// ResolveSource returns the effective data source. An explicit DataSource
// wins; otherwise it is inferred from the DataPath extension.
func (c *Config) ResolveSource() string {
	if c.DataSource != "" {
		return c.DataSource
	}
	switch strings.ToLower(filepath.Ext(c.DataPath)) {
	case ".json":
		return SourceJSON
	case ".yaml", ".yml":
		return SourceYAML
	case ".csv":
		return SourceCSV
	}
	return SourceBuiltin
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
