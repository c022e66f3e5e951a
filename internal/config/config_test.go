package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTKey(t *testing.T) {
	t.Setenv("JWT_KEY", "")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("JWT_KEY", "k")
	t.Setenv("ACCESS_TTL", "5m")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://www.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, 5*time.Minute, cfg.AccessTTL)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	require.Equal(t, []string{"https://app.example.com", "https://www.example.com"}, cfg.AllowedOrigins)
	require.Equal(t, 465, cfg.SMTPPort)
}
