package grantstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/luikyv/go-oidc-grants/internal/strutil"
	"github.com/luikyv/go-oidc-grants/pkg/goidc"
)

// keySeparator joins the handle and the grant type before hashing. Handles
// are generated by the server so they never contain it.
const keySeparator = ":"

// keyLogLength is the number of characters of a key written to logs.
const keyLogLength = 8

var (
	ErrMissingGrantType = errors.New("the grant type is required")

	// ErrNilPayload is returned by the stores of concrete grant kinds when
	// the payload to persist is nil.
	ErrNilPayload = errors.New("the grant payload cannot be nil")
)

// Store persists grants of a single type whose payload is T.
// The stores for concrete grant kinds hold one configured for their type.
type Store[T any] struct {
	grantType  goidc.GrantType
	manager    goidc.PersistedGrantManager
	handleFunc goidc.HandleFunc
	serializer goidc.Serializer
	hashFunc   func(string) string
	logger     *slog.Logger
}

// New creates a store for grants tagged with grantType. It returns
// [ErrMissingGrantType] if grantType is blank.
func New[T any](grantType goidc.GrantType, opts ...Option) (*Store[T], error) {
	if strings.TrimSpace(string(grantType)) == "" {
		return nil, ErrMissingGrantType
	}

	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return &Store[T]{
		grantType:  grantType,
		manager:    c.manager,
		handleFunc: c.handleFunc,
		serializer: c.serializer,
		hashFunc:   c.hashFunc,
		logger:     c.logger.With(slog.String("grant_type", string(grantType))),
	}, nil
}

func (s *Store[T]) GrantType() goidc.GrantType {
	return s.grantType
}

// Key returns the storage key of the grant identified by handle.
func (s *Store[T]) Key(handle string) string {
	return s.hashFunc(handle + keySeparator + string(s.grantType))
}

// Create stores item under a new handle and returns it.
// The grant expires lifetimeSecs after createdAt, so a lifetime less than or
// equal to zero creates a grant that is already expired. Use [Store.Save]
// with a zero expiration for grants that must not expire.
func (s *Store[T]) Create(
	ctx context.Context,
	item T,
	meta goidc.GrantMeta,
	createdAt int,
	lifetimeSecs int,
) (
	string,
	error,
) {
	handle, err := s.handleFunc()
	if err != nil {
		return "", fmt.Errorf("could not generate the grant handle: %w", err)
	}

	if err := s.Save(ctx, handle, item, meta, createdAt, createdAt+lifetimeSecs, 0); err != nil {
		return "", err
	}

	return handle, nil
}

// Save creates or replaces the grant identified by handle.
// Zero timestamps are stored as absent. Saving again with consumedAt set is
// how one time use grants are marked as consumed.
func (s *Store[T]) Save(
	ctx context.Context,
	handle string,
	item T,
	meta goidc.GrantMeta,
	createdAt int,
	expiresAt int,
	consumedAt int,
) error {
	data, err := s.serializer.Serialize(item)
	if err != nil {
		return fmt.Errorf("could not serialize the %s: %w", s.grantType, err)
	}

	grant := &goidc.PersistedGrant{
		Key:                 s.Key(handle),
		Type:                s.grantType,
		SubjectID:           meta.SubjectID,
		SessionID:           meta.SessionID,
		ClientID:            meta.ClientID,
		Description:         meta.Description,
		CreatedAtTimestamp:  createdAt,
		ExpiresAtTimestamp:  expiresAt,
		ConsumedAtTimestamp: consumedAt,
		Data:                data,
	}
	if err := s.manager.Save(ctx, grant); err != nil {
		return fmt.Errorf("could not save the %s: %w", s.grantType, err)
	}

	return nil
}

// Grant returns the persisted record of the grant identified by handle or
// nil if it doesn't exist.
// A record stored under the same key by another grant type is reported as
// not found.
func (s *Store[T]) Grant(ctx context.Context, handle string) (*goidc.PersistedGrant, error) {
	key := s.Key(handle)
	grant, err := s.manager.PersistedGrant(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("could not fetch the %s: %w", s.grantType, err)
	}

	if grant == nil {
		s.logger.DebugContext(ctx, "grant not found", slog.String("key", strutil.Truncate(key, keyLogLength)))
		return nil, nil
	}

	if grant.Type != s.grantType {
		s.logger.DebugContext(ctx, "grant not found, the type doesn't match",
			slog.String("key", strutil.Truncate(key, keyLogLength)),
			slog.String("stored_type", string(grant.Type)))
		return nil, nil
	}

	return grant, nil
}

// Item returns the payload of the grant identified by handle or nil if it
// doesn't exist.
// Grants whose payload cannot be deserialized are treated as not found.
func (s *Store[T]) Item(ctx context.Context, handle string) (*T, error) {
	grant, err := s.Grant(ctx, handle)
	if err != nil || grant == nil {
		return nil, err
	}

	return s.decode(ctx, grant), nil
}

func (s *Store[T]) decode(ctx context.Context, grant *goidc.PersistedGrant) *T {
	var item T
	if err := s.serializer.Deserialize(grant.Data, &item); err != nil {
		s.logger.WarnContext(ctx, "could not deserialize the grant payload, treating it as not found",
			slog.String("key", strutil.Truncate(grant.Key, keyLogLength)),
			slog.String("error", err.Error()))
		return nil
	}

	return &item
}

// Delete removes the grant identified by handle. Deleting a grant that
// doesn't exist is not an error.
func (s *Store[T]) Delete(ctx context.Context, handle string) error {
	if err := s.manager.Delete(ctx, s.Key(handle)); err != nil {
		return fmt.Errorf("could not delete the %s: %w", s.grantType, err)
	}
	return nil
}

// DeleteAll removes all the grants of this type issued to clientID on behalf
// of subjectID. An empty value matches any subject or client.
func (s *Store[T]) DeleteAll(ctx context.Context, subjectID, clientID string) error {
	return s.deleteAll(ctx, goidc.PersistedGrantFilter{
		SubjectID: subjectID,
		ClientID:  clientID,
		Type:      s.grantType,
	})
}

// DeleteAllForSession is like [Store.DeleteAll] but only removes the grants
// bound to sessionID.
func (s *Store[T]) DeleteAllForSession(ctx context.Context, subjectID, clientID, sessionID string) error {
	return s.deleteAll(ctx, goidc.PersistedGrantFilter{
		SubjectID: subjectID,
		ClientID:  clientID,
		SessionID: sessionID,
		Type:      s.grantType,
	})
}

func (s *Store[T]) deleteAll(ctx context.Context, filter goidc.PersistedGrantFilter) error {
	if err := s.manager.DeleteAll(ctx, filter); err != nil {
		return fmt.Errorf("could not delete the grants of type %s: %w", s.grantType, err)
	}

	s.logger.DebugContext(ctx, "grants deleted",
		slog.String("subject_id", filter.SubjectID),
		slog.String("client_id", filter.ClientID))
	return nil
}
