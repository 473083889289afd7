/*
Package configs loads the application configuration from environment variables.

It covers the server address, CORS origins, the token signing secret, and the
relay's room settings, with defaults suitable for development only.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig holds every runtime setting. All values come from the environment.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string
	JWTSecret      string
	TokenTTL       time.Duration

	// Relay Settings
	DefaultRoom    string
	RoomMaxClients int
}

// Environment variable names and defaults.
const (
	defaultPort     = 8080
	defaultRoom     = "lobby"
	defaultTokenTTL = 15 * time.Minute

	// devFallbackSecret is only ever applied in the development environment.
	devFallbackSecret = "insecure_dev_secret_change_me"
)

// LoadConfig reads and validates the configuration. Outside development a
// missing JWT_SECRET is a hard error: the secret must be provisioned
// out-of-band and never ships in source.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		cfg.Port = defaultPort
	} else {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
		}
		cfg.Port = port
	}

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the allowed range (1024-65535)", cfg.Port)
	}

	if originsStr := os.Getenv("ALLOWED_ORIGINS"); originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		if cfg.Environment != "development" {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required in %s environment", cfg.Environment)
		}
		cfg.JWTSecret = devFallbackSecret
	}

	cfg.TokenTTL = defaultTokenTTL
	if ttlStr := os.Getenv("TOKEN_TTL_SECONDS"); ttlStr != "" {
		ttlSeconds, err := strconv.Atoi(ttlStr)
		if err != nil || ttlSeconds <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL_SECONDS environment variable: %q", ttlStr)
		}
		cfg.TokenTTL = time.Duration(ttlSeconds) * time.Second
	}

	cfg.DefaultRoom = os.Getenv("DEFAULT_ROOM")
	if cfg.DefaultRoom == "" {
		cfg.DefaultRoom = defaultRoom
	}

	// 0 means unlimited.
	if maxStr := os.Getenv("ROOM_MAX_CLIENTS"); maxStr != "" {
		maxClients, err := strconv.Atoi(maxStr)
		if err != nil || maxClients < 0 {
			return nil, fmt.Errorf("invalid ROOM_MAX_CLIENTS environment variable: %q", maxStr)
		}
		cfg.RoomMaxClients = maxClients
	}

	return cfg, nil
}
