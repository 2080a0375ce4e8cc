package grantstore

import (
	"context"

	"github.com/luikyv/go-oidc-grants/pkg/goidc"
)

type RefreshTokenStore struct {
	store *Store[goidc.RefreshToken]
}

func NewRefreshTokenStore(opts ...Option) (*RefreshTokenStore, error) {
	store, err := New[goidc.RefreshToken](goidc.GrantRefreshToken, opts...)
	if err != nil {
		return nil, err
	}
	return &RefreshTokenStore{store: store}, nil
}

func (s *RefreshTokenStore) StoreRefreshToken(ctx context.Context, token *goidc.RefreshToken) (string, error) {
	if token == nil {
		return "", ErrNilPayload
	}
	return s.store.Create(ctx, *token, refreshTokenMeta(token), token.CreatedAtTimestamp, token.LifetimeSecs)
}

// UpdateRefreshToken replaces the refresh token stored under handle.
// It is used when the token is redeemed without rotation, in which case
// token.ConsumedAtTimestamp is set.
func (s *RefreshTokenStore) UpdateRefreshToken(ctx context.Context, handle string, token *goidc.RefreshToken) error {
	if token == nil {
		return ErrNilPayload
	}
	return s.store.Save(
		ctx,
		handle,
		*token,
		refreshTokenMeta(token),
		token.CreatedAtTimestamp,
		token.ExpiresAtTimestamp(),
		token.ConsumedAtTimestamp,
	)
}

func (s *RefreshTokenStore) RefreshToken(ctx context.Context, handle string) (*goidc.RefreshToken, error) {
	return s.store.Item(ctx, handle)
}

func (s *RefreshTokenStore) DeleteRefreshToken(ctx context.Context, handle string) error {
	return s.store.Delete(ctx, handle)
}

func (s *RefreshTokenStore) DeleteRefreshTokens(ctx context.Context, subjectID, clientID string) error {
	return s.store.DeleteAll(ctx, subjectID, clientID)
}

func refreshTokenMeta(token *goidc.RefreshToken) goidc.GrantMeta {
	return goidc.GrantMeta{
		ClientID:    token.ClientID(),
		SubjectID:   token.SubjectID(),
		SessionID:   token.SessionID(),
		Description: token.Description(),
	}
}
