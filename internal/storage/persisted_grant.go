package storage

import (
	"context"
	"sync"

	"github.com/luikyv/go-oidc-grants/pkg/goidc"
)

var _ goidc.PersistedGrantManager = (*PersistedGrantManager)(nil)

// PersistedGrantManager keeps grants in a map indexed by key.
// Grants are copied in and out so callers never share memory with the map.
type PersistedGrantManager struct {
	Grants map[string]goidc.PersistedGrant
	mu     sync.RWMutex
}

func NewPersistedGrantManager() *PersistedGrantManager {
	return &PersistedGrantManager{
		Grants: make(map[string]goidc.PersistedGrant),
	}
}

func (m *PersistedGrantManager) Save(ctx context.Context, grant *goidc.PersistedGrant) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Grants[grant.Key] = *grant
	return nil
}

func (m *PersistedGrantManager) PersistedGrant(ctx context.Context, key string) (*goidc.PersistedGrant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	grant, exists := m.Grants[key]
	if !exists {
		return nil, nil
	}

	return &grant, nil
}

func (m *PersistedGrantManager) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.Grants, key)
	return nil
}

// PersistedGrants returns the grants matching the filter at the moment the
// call acquires the lock. An empty filter returns every grant. The order of
// the result is not defined.
func (m *PersistedGrantManager) PersistedGrants(
	ctx context.Context,
	f goidc.PersistedGrantFilter,
) (
	[]*goidc.PersistedGrant,
	error,
) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return filter(m.snapshot(), f.Match), nil
}

// DeleteAll removes the grants matching the filter. The matching grants are
// selected first and then deleted one by one, so grants that were removed
// concurrently in the meantime are simply skipped.
func (m *PersistedGrantManager) DeleteAll(ctx context.Context, f goidc.PersistedGrantFilter) error {
	grants, err := m.PersistedGrants(ctx, f)
	if err != nil {
		return err
	}

	for _, grant := range grants {
		if err := m.Delete(ctx, grant.Key); err != nil {
			return err
		}
	}

	return nil
}

func (m *PersistedGrantManager) snapshot() []*goidc.PersistedGrant {
	m.mu.RLock()
	defer m.mu.RUnlock()

	grants := make([]*goidc.PersistedGrant, 0, len(m.Grants))
	for _, g := range m.Grants {
		grants = append(grants, &g)
	}

	return grants
}
