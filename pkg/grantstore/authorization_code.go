package grantstore

import (
	"context"

	"github.com/luikyv/go-oidc-grants/internal/timeutil"
	"github.com/luikyv/go-oidc-grants/pkg/goidc"
)

type AuthorizationCodeStore struct {
	store *Store[goidc.AuthorizationCode]
}

func NewAuthorizationCodeStore(opts ...Option) (*AuthorizationCodeStore, error) {
	store, err := New[goidc.AuthorizationCode](goidc.GrantAuthorizationCode, opts...)
	if err != nil {
		return nil, err
	}
	return &AuthorizationCodeStore{store: store}, nil
}

// StoreAuthorizationCode persists the code and returns the value sent to the
// client in the authorization response.
func (s *AuthorizationCodeStore) StoreAuthorizationCode(ctx context.Context, code *goidc.AuthorizationCode) (string, error) {
	if code == nil {
		return "", ErrNilPayload
	}
	return s.store.Create(ctx, *code, codeMeta(code), code.CreatedAtTimestamp, code.LifetimeSecs)
}

func (s *AuthorizationCodeStore) AuthorizationCode(ctx context.Context, handle string) (*goidc.AuthorizationCode, error) {
	return s.store.Item(ctx, handle)
}

// ConsumeAuthorizationCode marks the code as consumed and returns it. Nil is
// returned if the code doesn't exist or was already consumed.
// The read and the write are not atomic, so two concurrent calls may both
// succeed; backends that need stronger guarantees must delete the code
// instead.
func (s *AuthorizationCodeStore) ConsumeAuthorizationCode(ctx context.Context, handle string) (*goidc.AuthorizationCode, error) {
	grant, err := s.store.Grant(ctx, handle)
	if err != nil || grant == nil || grant.IsConsumed() {
		return nil, err
	}

	code := s.store.decode(ctx, grant)
	if code == nil {
		return nil, nil
	}

	if err := s.store.Save(
		ctx,
		handle,
		*code,
		codeMeta(code),
		grant.CreatedAtTimestamp,
		grant.ExpiresAtTimestamp,
		timeutil.TimestampNow(),
	); err != nil {
		return nil, err
	}

	return code, nil
}

func (s *AuthorizationCodeStore) DeleteAuthorizationCode(ctx context.Context, handle string) error {
	return s.store.Delete(ctx, handle)
}

func codeMeta(code *goidc.AuthorizationCode) goidc.GrantMeta {
	return goidc.GrantMeta{
		ClientID:    code.ClientID,
		SubjectID:   code.SubjectID,
		SessionID:   code.SessionID,
		Description: code.Description,
	}
}
