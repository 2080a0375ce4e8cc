package grantstore

import (
	"context"

	"github.com/luikyv/go-oidc-grants/pkg/goidc"
)

// ReferenceTokenStore persists access tokens issued in the reference format.
// Clients only get the handle; the token content is resolved through the
// store during introspection.
type ReferenceTokenStore struct {
	store *Store[goidc.Token]
}

func NewReferenceTokenStore(opts ...Option) (*ReferenceTokenStore, error) {
	store, err := New[goidc.Token](goidc.GrantReferenceToken, opts...)
	if err != nil {
		return nil, err
	}
	return &ReferenceTokenStore{store: store}, nil
}

// StoreReferenceToken persists the token and returns the handle that must be
// sent to the client in place of the token.
func (s *ReferenceTokenStore) StoreReferenceToken(ctx context.Context, token *goidc.Token) (string, error) {
	if token == nil {
		return "", ErrNilPayload
	}
	return s.store.Create(ctx, *token, tokenMeta(token), token.CreatedAtTimestamp, token.LifetimeSecs)
}

// ReferenceToken returns nil if no token exists for the handle.
func (s *ReferenceTokenStore) ReferenceToken(ctx context.Context, handle string) (*goidc.Token, error) {
	return s.store.Item(ctx, handle)
}

func (s *ReferenceTokenStore) DeleteReferenceToken(ctx context.Context, handle string) error {
	return s.store.Delete(ctx, handle)
}

// DeleteReferenceTokens revokes all the reference tokens issued to a client
// on behalf of a subject.
func (s *ReferenceTokenStore) DeleteReferenceTokens(ctx context.Context, subjectID, clientID string) error {
	return s.store.DeleteAll(ctx, subjectID, clientID)
}

func tokenMeta(token *goidc.Token) goidc.GrantMeta {
	return goidc.GrantMeta{
		ClientID:    token.ClientID,
		SubjectID:   token.SubjectID(),
		SessionID:   token.SessionID(),
		Description: token.Description,
	}
}
