// Package config loads the FoodShare front-end configuration from the
// environment. A .env file in the working directory is read first, when
// present; real environment variables win over it.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	FoodAPI FoodAPIConfig
	Session SessionConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// FoodAPIConfig points at the remote food API. BaseURL is the only place the
// API origin is configured.
type FoodAPIConfig struct {
	BaseURL string
	Timeout time.Duration
	// UseFake serves an in-memory API from the same process (development only).
	UseFake bool
}

type SessionConfig struct {
	Secret     string
	CookieName string
	MaxAge     int // seconds (default: 1 year; sessions end on logout)
	Issuer     string
}

// IsProduction reports whether cookies must be marked Secure.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Load returns application configuration from environment variables
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: ignoring .env: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		FoodAPI: FoodAPIConfig{
			BaseURL: getEnv("FOOD_API_BASE_URL", "http://localhost:8080"),
			Timeout: getEnvDuration("FOOD_API_TIMEOUT", 10*time.Second),
			UseFake: getEnvBool("FOOD_API_FAKE", false),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", ""),
			CookieName: getEnv("SESSION_COOKIE_NAME", "user"),
			MaxAge:     getEnvInt("SESSION_MAX_AGE", 365*24*60*60),
			Issuer:     getEnv("SESSION_ISSUER", "foodshare"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		boolVal, err := strconv.ParseBool(value)
		if err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
