package context

import (
	"context"

	"github.com/rosterlab/memberd/internal/model"
)

type contextKey string

// identityKey is the context key holding the verified acting identity.
const identityKey contextKey = "identity"

// Manager moves the acting identity in and out of request contexts. The
// data layer calls GetIdentityFromContext as its currentIdentity() gate
// before evaluating any row-level rule.
type Manager struct{}

// NewManager creates a context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a context carrying the given identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentityFromContext retrieves the acting identity from the context.
// The second return value is false when no identity was set, which callers
// must treat as anonymous.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(model.Identity)
	if !ok {
		return model.Anonymous(), false
	}
	return identity, true
}
