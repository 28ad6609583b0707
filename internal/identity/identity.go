// Package identity defines the identity collaborator surface consumed by
// the rest of the application: a point-in-time "who is the current user"
// read and a subscription for session lifecycle changes. The session is
// resolved exactly once per request by the auth middleware and carried on
// the request context; everything below the HTTP boundary receives an
// explicit user id.
package identity

import (
	"context"
	"sync"
)

// Provider is what consumers see of the identity collaborator.
type Provider interface {
	// CurrentUserID returns the id of the user bound to ctx, if any.
	CurrentUserID(ctx context.Context) (string, bool)

	// SubscribeSessionChanges registers a callback invoked on login
	// (active=true) and logout (active=false). The returned function
	// removes the subscription.
	SubscribeSessionChanges(fn func(userID string, active bool)) (unsubscribe func())
}

type ctxKey struct{}

// WithUserID binds an authenticated user id to the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserIDFromContext returns the user id bound to the context, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ctxKey{}).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// Broker implements Provider. The current user comes from the request
// context; session changes are fanned out to subscribers synchronously in
// announcement order.
type Broker struct {
	mu   sync.Mutex
	next int
	subs map[int]func(userID string, active bool)
}

// NewBroker creates a Broker with no subscribers.
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]func(string, bool))}
}

// CurrentUserID implements Provider.
func (b *Broker) CurrentUserID(ctx context.Context) (string, bool) {
	return UserIDFromContext(ctx)
}

// SubscribeSessionChanges implements Provider.
func (b *Broker) SubscribeSessionChanges(fn func(userID string, active bool)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Announce notifies all subscribers of a session change.
func (b *Broker) Announce(userID string, active bool) {
	b.mu.Lock()
	fns := make([]func(string, bool), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(userID, active)
	}
}

var _ Provider = (*Broker)(nil)
