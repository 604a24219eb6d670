package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the server settings read from the environment (and .env).
type Config struct {
	Port          string
	GinMode       string
	SessionSecret string
	JWTSecret     string

	// HootAPIURL selects the remote hoot API. When empty the server falls back
	// to the local PostgreSQL store at DatabaseURL.
	HootAPIURL  string
	APITimeout  time.Duration
	DatabaseURL string

	ViewCacheSize int
	ViewTTL       time.Duration
	CORSOrigins   []string
}

func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		SessionSecret: getEnv("SESSION_SECRET", "secret_key_change_me"),
		JWTSecret:     getEnv("JWT_SECRET", "jwt_secret_change_me"),
		HootAPIURL:    strings.TrimSuffix(os.Getenv("HOOT_API_URL"), "/"),
		APITimeout:    getDuration("HOOT_API_TIMEOUT", 10*time.Second),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		ViewCacheSize: getInt("VIEW_CACHE_SIZE", 500),
		ViewTTL:       getDuration("VIEW_TTL", 30*time.Minute),
		CORSOrigins:   getList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}

	if cfg.HootAPIURL == "" && cfg.DatabaseURL == "" {
		// Fallback for local dev if neither backend is set
		cfg.DatabaseURL = "host=localhost user=postgres password=postgres dbname=hootline port=5432 sslmode=disable"
	}
	return cfg
}

// UseRemoteAPI reports whether hoots come from the remote API rather than the
// local database.
func (c *Config) UseRemoteAPI() bool {
	return c.HootAPIURL != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("Invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
