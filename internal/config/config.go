package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	MongoURI       string
	DatabaseName   string
	JWTSecret      string
	TokenExpiry    time.Duration
	AllowedOrigins []string
}

// Load reads configuration from the environment, optionally seeded from a
// .env file in the working directory.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		MongoURI:       getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseName:   getEnv("DATABASE_NAME", "quizdeck"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenExpiry:    parseDuration(getEnv("TOKEN_EXPIRY", "60m")),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
	}
	if cfg.JWTSecret == "" {
		log.Println("JWT_SECRET is not set; tokens will be signed with an empty key")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseDuration(raw string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 60 * time.Minute
	}
	return d
}
