// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// JWTSecret signs access and password-reset tokens. Required.
	JWTSecret string

	// OpenWeatherAPIKey authenticates OpenWeatherMap requests. When empty,
	// weather lookups fail upstream and surface as per-destination error
	// annotations; an empty key never prevents startup.
	OpenWeatherAPIKey string

	// OpenTripMapAPIKey authenticates OpenTripMap points-of-interest requests.
	OpenTripMapAPIKey string

	// UnsplashAccessKey authenticates Unsplash image-search requests.
	UnsplashAccessKey string

	// Base URLs for the third-party APIs. Defaults point at the public
	// endpoints; tests override them with httptest servers.
	OpenWeatherBaseURL string
	OpenTripMapBaseURL string
	NominatimBaseURL   string
	OverpassBaseURL    string
	UnsplashBaseURL    string

	// DestinationCacheTTL bounds how long a per-country destination list is
	// served from memory before being fetched again. Defaults to 15m.
	DestinationCacheTTL time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		OpenTripMapAPIKey:  os.Getenv("OPENTRIPMAP_API_KEY"),
		UnsplashAccessKey:  os.Getenv("UNSPLASH_ACCESS_KEY"),
		OpenWeatherBaseURL: getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"),
		OpenTripMapBaseURL: getEnv("OPENTRIPMAP_BASE_URL", "https://api.opentripmap.com"),
		NominatimBaseURL:   getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		OverpassBaseURL:    getEnv("OVERPASS_BASE_URL", "https://overpass-api.de"),
		UnsplashBaseURL:    getEnv("UNSPLASH_BASE_URL", "https://api.unsplash.com"),
	}

	ttl, err := time.ParseDuration(getEnv("DESTINATION_CACHE_TTL", "15m"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid DESTINATION_CACHE_TTL: %w", err)
	}
	cfg.DestinationCacheTTL = ttl

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
