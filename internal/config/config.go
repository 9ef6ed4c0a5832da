package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        string

	// Gemini configuration
	GeminiAPIKey string
	GeminiModel  string // "gemini-2.5-pro", "gemini-2.0-flash"
	AITimeout    time.Duration
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Could not load .env file, using environment variables")
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.5-pro" // default
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	timeout := 60 * time.Second
	if raw := os.Getenv("AI_TIMEOUT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		} else {
			log.Printf("Warning: invalid AI_TIMEOUT_SECONDS %q, using default", raw)
		}
	}

	return &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Port:         port,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  model,
		AITimeout:    timeout,
	}
}
