package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	JWTSecret   string
	ServerAddr  string
}

// Load reads .env then the environment. Missing required settings come back
// as an enumerable diagnostics list; the caller keeps serving in a degraded
// mode instead of crashing.
func Load() (*Config, []string) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		ServerAddr:  os.Getenv("SERVER_ADDRESS"),
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = "0.0.0.0:8080"
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET is not set")
	}
	return cfg, missing
}
