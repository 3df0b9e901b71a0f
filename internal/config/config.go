package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config collects the environment settings the server needs at startup.
type Config struct {
	Port     string
	DBPath   string
	SeedMenu bool
}

// Load reads an optional .env file and resolves settings with defaults.
// A missing .env is fine; explicit environment variables always win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:     getenv("APP_PORT", "8080"),
		DBPath:   getenv("POS_DB_PATH", "cuppa.db"),
		SeedMenu: os.Getenv("POS_SEED_MENU") == "true",
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
