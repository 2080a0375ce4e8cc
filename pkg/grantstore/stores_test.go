package grantstore_test

import (
	"context"
	"testing"

	"github.com/luikyv/go-oidc-grants/internal/storage"
	"github.com/luikyv/go-oidc-grants/pkg/goidc"
	"github.com/luikyv/go-oidc-grants/pkg/grantstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStores_SharedManager(t *testing.T) {
	// Given.
	stores, err := grantstore.NewStores()
	require.NoError(t, err)
	ctx := context.Background()

	token := &goidc.Token{
		ClientID:     "app1",
		LifetimeSecs: 60,
		Claims:       map[string]any{goidc.ClaimSubject: "alice"},
	}
	tokenHandle, err := stores.ReferenceTokens.StoreReferenceToken(ctx, token)
	require.NoError(t, err)
	_, err = stores.RefreshTokens.StoreRefreshToken(ctx, &goidc.RefreshToken{AccessToken: token})
	require.NoError(t, err)
	_, err = stores.AuthorizationCodes.StoreAuthorizationCode(ctx, &goidc.AuthorizationCode{
		ClientID:  "app1",
		SubjectID: "alice",
	})
	require.NoError(t, err)
	require.NoError(t, stores.UserConsents.StoreUserConsent(ctx, &goidc.UserConsent{
		SubjectID: "alice",
		ClientID:  "app2",
	}))

	// When.
	grants, err := stores.Grants(ctx, goidc.PersistedGrantFilter{SubjectID: "alice", ClientID: "app1"})

	// Then.
	require.NoError(t, err)
	assert.Len(t, grants, 3)

	// When.
	err = stores.DeleteGrants(ctx, goidc.PersistedGrantFilter{SubjectID: "alice", ClientID: "app1"})

	// Then.
	require.NoError(t, err)
	got, err := stores.ReferenceTokens.ReferenceToken(ctx, tokenHandle)
	require.NoError(t, err)
	assert.Nil(t, got)

	grants, err = stores.Grants(ctx, goidc.PersistedGrantFilter{})
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, goidc.GrantUserConsent, grants[0].Type)
}

func TestStores_InvalidOption(t *testing.T) {
	// When.
	_, err := grantstore.NewStores(grantstore.WithPersistedGrantManager(nil))

	// Then.
	assert.Error(t, err)
}

func TestStores_NilPayload(t *testing.T) {
	// Given.
	manager := storage.NewPersistedGrantManager()
	stores, err := grantstore.NewStores(grantstore.WithPersistedGrantManager(manager))
	require.NoError(t, err)
	ctx := context.Background()

	testCases := []struct {
		name  string
		store func() error
	}{
		{"reference token", func() error {
			_, err := stores.ReferenceTokens.StoreReferenceToken(ctx, nil)
			return err
		}},
		{"refresh token", func() error {
			_, err := stores.RefreshTokens.StoreRefreshToken(ctx, nil)
			return err
		}},
		{"refresh token update", func() error {
			return stores.RefreshTokens.UpdateRefreshToken(ctx, "handle", nil)
		}},
		{"authorization code", func() error {
			_, err := stores.AuthorizationCodes.StoreAuthorizationCode(ctx, nil)
			return err
		}},
		{"user consent", func() error {
			return stores.UserConsents.StoreUserConsent(ctx, nil)
		}},
		{"device code", func() error {
			return stores.DeviceCodes.StoreDeviceCode(ctx, "device_code", nil)
		}},
		{"device code update", func() error {
			return stores.DeviceCodes.UpdateDeviceCode(ctx, "device_code", nil)
		}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			// When.
			err := testCase.store()

			// Then.
			assert.ErrorIs(t, err, grantstore.ErrNilPayload)
			assert.Empty(t, manager.Grants)
		})
	}
}
