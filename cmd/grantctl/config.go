package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/luikyv/go-oidc-grants/pkg/mongodb"
)

type config struct {
	MongoURI   string        `env:"GRANTCTL_MONGO_URI" envDefault:"mongodb://localhost:27017"`
	Database   string        `env:"GRANTCTL_DATABASE" envDefault:"goidc"`
	Collection string        `env:"GRANTCTL_COLLECTION"`
	Timeout    time.Duration `env:"GRANTCTL_TIMEOUT" envDefault:"10s"`
	LogLevel   slog.Level    `env:"GRANTCTL_LOG_LEVEL" envDefault:"INFO"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Collection == "" {
		cfg.Collection = mongodb.DefaultCollection
	}

	return cfg, nil
}

func newLogger(cfg config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
}
