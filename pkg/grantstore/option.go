package grantstore

import (
	"errors"
	"log/slog"

	"github.com/luikyv/go-oidc-grants/internal/hashutil"
	"github.com/luikyv/go-oidc-grants/internal/storage"
	"github.com/luikyv/go-oidc-grants/pkg/goidc"
)

// Key hash functions available to [WithKeyHashFunc].
var (
	KeyHashSHA256  = hashutil.Thumbprint
	KeyHashBlake2b = hashutil.Blake2bThumbprint
)

type Option func(c *config) error

type config struct {
	manager    goidc.PersistedGrantManager
	handleFunc goidc.HandleFunc
	serializer goidc.Serializer
	hashFunc   func(string) string
	logger     *slog.Logger
}

func defaultConfig() config {
	return config{
		handleFunc: goidc.RandomHandle,
		serializer: goidc.JSONSerializer{},
		hashFunc:   KeyHashSHA256,
		logger:     slog.Default(),
	}
}

func newConfig(opts []Option) (config, error) {
	c := defaultConfig()
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return config{}, err
		}
	}

	if c.manager == nil {
		c.manager = storage.NewPersistedGrantManager()
	}

	return c, nil
}

// WithPersistedGrantManager replaces the default storage which keeps grants
// in memory.
// Stores that must see each other's grants, e.g. to revoke all the grants of
// a user, must be configured with the same manager.
func WithPersistedGrantManager(manager goidc.PersistedGrantManager) Option {
	return func(c *config) error {
		if manager == nil {
			return errors.New("the persisted grant manager cannot be nil")
		}
		c.manager = manager
		return nil
	}
}

// WithHandleFunc overrides the default handle generator which is
// [goidc.RandomHandle].
func WithHandleFunc(f goidc.HandleFunc) Option {
	return func(c *config) error {
		if f == nil {
			return errors.New("the handle function cannot be nil")
		}
		c.handleFunc = f
		return nil
	}
}

// WithSerializer overrides the default JSON serializer.
// Changing the serializer of an existing deployment makes previously stored
// grants unreadable.
func WithSerializer(s goidc.Serializer) Option {
	return func(c *config) error {
		if s == nil {
			return errors.New("the serializer cannot be nil")
		}
		c.serializer = s
		return nil
	}
}

// WithKeyHashFunc overrides the function used to derive storage keys from
// handles, which is [KeyHashSHA256] by default.
func WithKeyHashFunc(f func(string) string) Option {
	return func(c *config) error {
		if f == nil {
			return errors.New("the key hash function cannot be nil")
		}
		c.hashFunc = f
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return errors.New("the logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}
