package goidc

import (
	"context"
	"errors"
	"fmt"

	"github.com/luikyv/go-oidc-grants/internal/timeutil"
)

var (
	// ErrInvalidFilter is returned when a filter does not satisfy the
	// constraints of the storage backend it is sent to.
	ErrInvalidFilter = errors.New("invalid persisted grant filter")
)

// PersistedGrantManager is the storage contract shared by every grant kind.
// Implementations must be safe for concurrent use.
type PersistedGrantManager interface {
	// Save creates or replaces the grant identified by grant.Key.
	Save(ctx context.Context, grant *PersistedGrant) error
	// PersistedGrant returns nil and no error when the key is not found.
	PersistedGrant(ctx context.Context, key string) (*PersistedGrant, error)
	// Delete removes the grant if present. Deleting an unknown key is not an
	// error.
	Delete(ctx context.Context, key string) error
	PersistedGrants(ctx context.Context, filter PersistedGrantFilter) ([]*PersistedGrant, error)
	DeleteAll(ctx context.Context, filter PersistedGrantFilter) error
}

// PersistedGrant is the record written to storage for every grant kind.
// The payload is kept serialized in Data so the backend never needs to know
// its type.
type PersistedGrant struct {
	// Key is derived from the grant handle and type. It is never the handle
	// itself.
	Key         string    `json:"key" bson:"_id" yaml:"key"`
	Type        GrantType `json:"type" bson:"type" yaml:"type"`
	SubjectID   string    `json:"subject_id,omitempty" bson:"subject_id,omitempty" yaml:"subject_id,omitempty"`
	SessionID   string    `json:"session_id,omitempty" bson:"session_id,omitempty" yaml:"session_id,omitempty"`
	ClientID    string    `json:"client_id,omitempty" bson:"client_id,omitempty" yaml:"client_id,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" yaml:"description,omitempty"`
	// CreatedAtTimestamp is the unix time when the grant was stored.
	CreatedAtTimestamp int `json:"created_at" bson:"created_at" yaml:"created_at"`
	// ExpiresAtTimestamp is zero for grants whose lifetime is managed by the
	// caller.
	ExpiresAtTimestamp int `json:"expires_at,omitempty" bson:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	// ConsumedAtTimestamp is set when a one time use grant was redeemed.
	ConsumedAtTimestamp int    `json:"consumed_at,omitempty" bson:"consumed_at,omitempty" yaml:"consumed_at,omitempty"`
	Data                string `json:"data" bson:"data" yaml:"data,omitempty"`
}

// IsExpired reports whether the grant has an expiration and it is in the past.
// The storage layer never enforces expiration, callers do it when reading.
func (g *PersistedGrant) IsExpired() bool {
	return g.ExpiresAtTimestamp != 0 && timeutil.TimestampNow() > g.ExpiresAtTimestamp
}

func (g *PersistedGrant) IsConsumed() bool {
	return g.ConsumedAtTimestamp != 0
}

// PersistedGrantFilter selects grants by owner metadata. Empty fields are
// ignored and the remaining ones must all match.
type PersistedGrantFilter struct {
	SubjectID string
	SessionID string
	ClientID  string
	Type      GrantType
}

// IsEmpty reports whether the filter has no predicate at all, i.e. it
// matches every grant.
func (f PersistedGrantFilter) IsEmpty() bool {
	return f.SubjectID == "" && f.SessionID == "" && f.ClientID == "" && f.Type == ""
}

func (f PersistedGrantFilter) Match(grant *PersistedGrant) bool {
	if grant == nil {
		return false
	}

	if f.SubjectID != "" && grant.SubjectID != f.SubjectID {
		return false
	}

	if f.SessionID != "" && grant.SessionID != f.SessionID {
		return false
	}

	if f.ClientID != "" && grant.ClientID != f.ClientID {
		return false
	}

	if f.Type != "" && grant.Type != f.Type {
		return false
	}

	return true
}

// RequireBounded fails with [ErrInvalidFilter] when the filter has no
// predicate. Backends where a full scan is expensive call it before querying.
func (f PersistedGrantFilter) RequireBounded() error {
	if f.IsEmpty() {
		return fmt.Errorf("%w: at least one of subject id, session id, client id or type must be set", ErrInvalidFilter)
	}
	return nil
}
