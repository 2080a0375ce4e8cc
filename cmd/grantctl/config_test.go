package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/luikyv/go-oidc-grants/pkg/mongodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// When.
	cfg, err := loadConfig()

	// Then.
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "goidc", cfg.Database)
	assert.Equal(t, mongodb.DefaultCollection, cfg.Collection)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadConfig(t *testing.T) {
	// Given.
	t.Setenv("GRANTCTL_MONGO_URI", "mongodb://db:27017")
	t.Setenv("GRANTCTL_DATABASE", "auth")
	t.Setenv("GRANTCTL_COLLECTION", "grants")
	t.Setenv("GRANTCTL_TIMEOUT", "30s")
	t.Setenv("GRANTCTL_LOG_LEVEL", "DEBUG")

	// When.
	cfg, err := loadConfig()

	// Then.
	require.NoError(t, err)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "auth", cfg.Database)
	assert.Equal(t, "grants", cfg.Collection)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadConfig_InvalidTimeout(t *testing.T) {
	// Given.
	t.Setenv("GRANTCTL_TIMEOUT", "soon")

	// When.
	_, err := loadConfig()

	// Then.
	assert.Error(t, err)
}
