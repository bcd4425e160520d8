package app

import "os"

type Config struct {
	DatabaseFile string // Optional: path to SQLite database file (default: ./portal.db)
	SeedDemo     bool   // Optional: install demo accounts on first run (default: true)
	Env          string // Environment (dev, staging, prod) (default: dev)
	LogLevel     string // Log level (debug, info, warn, error) (default: info)
	LogFormat    string // Log format (json, text) (default: json)
}

func LoadConfig() Config {
	return Config{
		DatabaseFile: getEnvOrDefault("PORTAL_DATABASE_FILE", "portal.db"),
		SeedDemo:     getEnvOrDefault("PORTAL_SEED_DEMO", "true") == "true",
		Env:          getEnvOrDefault("ENV", "dev"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:    getEnvOrDefault("LOG_FORMAT", "json"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
