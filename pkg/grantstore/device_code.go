package grantstore

import (
	"context"

	"github.com/luikyv/go-oidc-grants/pkg/goidc"
)

// DeviceCodeStore persists device authorization requests. Unlike the other
// stores, the handle is the device code chosen by the caller.
type DeviceCodeStore struct {
	store *Store[goidc.DeviceCode]
}

func NewDeviceCodeStore(opts ...Option) (*DeviceCodeStore, error) {
	store, err := New[goidc.DeviceCode](goidc.GrantDeviceCode, opts...)
	if err != nil {
		return nil, err
	}
	return &DeviceCodeStore{store: store}, nil
}

func (s *DeviceCodeStore) StoreDeviceCode(ctx context.Context, deviceCode string, code *goidc.DeviceCode) error {
	if code == nil {
		return ErrNilPayload
	}
	return s.store.Save(
		ctx,
		deviceCode,
		*code,
		deviceCodeMeta(code),
		code.CreatedAtTimestamp,
		code.ExpiresAtTimestamp(),
		0,
	)
}

// UpdateDeviceCode replaces the stored request, e.g. after the user
// authorized it.
func (s *DeviceCodeStore) UpdateDeviceCode(ctx context.Context, deviceCode string, code *goidc.DeviceCode) error {
	return s.StoreDeviceCode(ctx, deviceCode, code)
}

func (s *DeviceCodeStore) DeviceCode(ctx context.Context, deviceCode string) (*goidc.DeviceCode, error) {
	return s.store.Item(ctx, deviceCode)
}

func (s *DeviceCodeStore) DeleteDeviceCode(ctx context.Context, deviceCode string) error {
	return s.store.Delete(ctx, deviceCode)
}

func deviceCodeMeta(code *goidc.DeviceCode) goidc.GrantMeta {
	return goidc.GrantMeta{
		ClientID:    code.ClientID,
		SubjectID:   code.SubjectID,
		SessionID:   code.SessionID,
		Description: code.Description,
	}
}
