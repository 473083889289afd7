package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS", "JWT_SECRET",
		"TOKEN_TTL_SECONDS", "DEFAULT_ROOM", "ROOM_MAX_CLIENTS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDevelopmentDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, 8080, cfg.Port)
	require.NotEmpty(t, cfg.JWTSecret)
	require.Equal(t, 15*time.Minute, cfg.TokenTTL)
	require.Equal(t, "lobby", cfg.DefaultRoom)
	require.Equal(t, 0, cfg.RoomMaxClients)
}

func TestLoadConfigProductionRequiresSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "prod_secret")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "prod_secret", cfg.JWTSecret)
}

func TestLoadConfigInvalidPort(t *testing.T) {
	clearEnv(t)

	for _, port := range []string{"abc", "80", "99999"} {
		t.Setenv("PORT", port)
		_, err := LoadConfig()
		require.Error(t, err, "port %q must be rejected", port)
	}
}

func TestLoadConfigTokenTTL(t *testing.T) {
	clearEnv(t)

	t.Setenv("TOKEN_TTL_SECONDS", "120")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 2*time.Minute, cfg.TokenTTL)

	for _, ttl := range []string{"abc", "0", "-5"} {
		t.Setenv("TOKEN_TTL_SECONDS", ttl)
		_, err := LoadConfig()
		require.Error(t, err, "ttl %q must be rejected", ttl)
	}
}

func TestLoadConfigAllowedOrigins(t *testing.T) {
	clearEnv(t)

	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestLoadConfigRoomMaxClients(t *testing.T) {
	clearEnv(t)

	t.Setenv("ROOM_MAX_CLIENTS", "10")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 10, cfg.RoomMaxClients)

	t.Setenv("ROOM_MAX_CLIENTS", "-1")
	_, err = LoadConfig()
	require.Error(t, err)
}
