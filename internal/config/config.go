// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
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

	// PlanningLimits names the drive-limit preset: "heritage" (default) or "calculator".
	PlanningLimits string

	// GoogleMapsAPIKey enables road distances from the Distance Matrix API.
	// When empty, the planner estimates distances from great-circle miles.
	GoogleMapsAPIKey string

	// DistanceRPS caps outbound Distance Matrix requests per second. Defaults to 10.
	DistanceRPS float64

	// RedisURL enables the shared distance cache, e.g. redis://localhost:6379/0.
	// When empty, distances are cached in process memory.
	RedisURL string

	// AttractionConcurrency bounds the attraction lookups in flight per plan. Defaults to 4.
	AttractionConcurrency int
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set and any
// numeric variables that do not parse.
func Load() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		PlanningLimits:   strings.ToLower(getEnv("PLANNING_LIMITS", "heritage")),
		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		RedisURL:         os.Getenv("REDIS_URL"),
	}

	var missing, invalid []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	rps, err := strconv.ParseFloat(getEnv("DISTANCE_RPS", "10"), 64)
	if err != nil || rps <= 0 {
		invalid = append(invalid, "DISTANCE_RPS")
	}
	cfg.DistanceRPS = rps

	conc, err := strconv.Atoi(getEnv("ATTRACTION_FETCH_CONCURRENCY", "4"))
	if err != nil || conc < 1 {
		invalid = append(invalid, "ATTRACTION_FETCH_CONCURRENCY")
	}
	cfg.AttractionConcurrency = conc

	if cfg.PlanningLimits != "heritage" && cfg.PlanningLimits != "calculator" {
		invalid = append(invalid, "PLANNING_LIMITS")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
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
