package grantstore_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/luikyv/go-oidc-grants/internal/storage"
	"github.com/luikyv/go-oidc-grants/internal/timeutil"
	"github.com/luikyv/go-oidc-grants/pkg/goidc"
	"github.com/luikyv/go-oidc-grants/pkg/grantstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizationCodeStore(t *testing.T) {
	// Given.
	manager := storage.NewPersistedGrantManager()
	store, err := grantstore.NewAuthorizationCodeStore(grantstore.WithPersistedGrantManager(manager))
	require.NoError(t, err)
	ctx := context.Background()
	code := &goidc.AuthorizationCode{
		ClientID:            "app1",
		SubjectID:           "alice",
		SessionID:           "session_1",
		RedirectURI:         "https://app1.example.com/callback",
		Scopes:              "openid api1",
		CodeChallenge:       "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM",
		CodeChallengeMethod: goidc.CodeChallengeMethodSHA256,
		Nonce:               "random_nonce",
		IsOpenID:            true,
		CreatedAtTimestamp:  timeutil.TimestampNow(),
		LifetimeSecs:        60,
	}

	// When.
	handle, err := store.StoreAuthorizationCode(ctx, code)

	// Then.
	require.NoError(t, err)

	got, err := store.AuthorizationCode(ctx, handle)
	require.NoError(t, err)
	require.NotNil(t, got)
	if diff := cmp.Diff(code, got); diff != "" {
		t.Error(diff)
	}

	grant := manager.Grants[hashedKey(t, handle, goidc.GrantAuthorizationCode)]
	assert.Equal(t, "session_1", grant.SessionID)

	// When.
	err = store.DeleteAuthorizationCode(ctx, handle)

	// Then.
	require.NoError(t, err)
	got, err = store.AuthorizationCode(ctx, handle)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAuthorizationCodeStore_Consume(t *testing.T) {
	// Given.
	manager := storage.NewPersistedGrantManager()
	store, err := grantstore.NewAuthorizationCodeStore(grantstore.WithPersistedGrantManager(manager))
	require.NoError(t, err)
	ctx := context.Background()
	now := timeutil.TimestampNow()
	handle, err := store.StoreAuthorizationCode(ctx, &goidc.AuthorizationCode{
		ClientID:           "app1",
		SubjectID:          "alice",
		CreatedAtTimestamp: now,
		LifetimeSecs:       60,
	})
	require.NoError(t, err)

	// When.
	first, err1 := store.ConsumeAuthorizationCode(ctx, handle)
	second, err2 := store.ConsumeAuthorizationCode(ctx, handle)

	// Then.
	require.NoError(t, err1)
	require.NotNil(t, first)
	assert.Equal(t, "alice", first.SubjectID)

	require.NoError(t, err2)
	assert.Nil(t, second, "a code can only be consumed once")

	grant := manager.Grants[hashedKey(t, handle, goidc.GrantAuthorizationCode)]
	assert.True(t, grant.IsConsumed())
	assert.Equal(t, now+60, grant.ExpiresAtTimestamp)
	assert.Equal(t, now, grant.CreatedAtTimestamp)
}

func TestAuthorizationCodeStore_ConsumeUnknownCode(t *testing.T) {
	// Given.
	store, err := grantstore.NewAuthorizationCodeStore()
	require.NoError(t, err)

	// When.
	code, err := store.ConsumeAuthorizationCode(context.Background(), "unknown_code")

	// Then.
	assert.NoError(t, err)
	assert.Nil(t, code)
}
