package grantstore

import (
	"context"
	"fmt"
	"slices"

	"github.com/luikyv/go-oidc-grants/pkg/goidc"
)

// Stores groups the stores of every grant kind on top of the same persisted
// grant manager.
type Stores struct {
	AuthorizationCodes *AuthorizationCodeStore
	RefreshTokens      *RefreshTokenStore
	ReferenceTokens    *ReferenceTokenStore
	UserConsents       *UserConsentStore
	DeviceCodes        *DeviceCodeStore
	manager            goidc.PersistedGrantManager
}

func NewStores(opts ...Option) (*Stores, error) {
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	// Pin the manager so all the stores share the one resolved above, even
	// when it is the default in memory storage.
	opts = append(slices.Clip(opts), WithPersistedGrantManager(c.manager))

	stores := &Stores{manager: c.manager}
	if stores.AuthorizationCodes, err = NewAuthorizationCodeStore(opts...); err != nil {
		return nil, err
	}
	if stores.RefreshTokens, err = NewRefreshTokenStore(opts...); err != nil {
		return nil, err
	}
	if stores.ReferenceTokens, err = NewReferenceTokenStore(opts...); err != nil {
		return nil, err
	}
	if stores.UserConsents, err = NewUserConsentStore(opts...); err != nil {
		return nil, err
	}
	if stores.DeviceCodes, err = NewDeviceCodeStore(opts...); err != nil {
		return nil, err
	}

	return stores, nil
}

// Grants returns the records of all grant kinds matching the filter. The
// payloads are left serialized.
func (s *Stores) Grants(ctx context.Context, filter goidc.PersistedGrantFilter) ([]*goidc.PersistedGrant, error) {
	grants, err := s.manager.PersistedGrants(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("could not fetch the grants: %w", err)
	}
	return grants, nil
}

// DeleteGrants removes the grants of all kinds matching the filter, e.g. every
// grant of a subject and client when the user logs out.
func (s *Stores) DeleteGrants(ctx context.Context, filter goidc.PersistedGrantFilter) error {
	if err := s.manager.DeleteAll(ctx, filter); err != nil {
		return fmt.Errorf("could not delete the grants: %w", err)
	}
	return nil
}
