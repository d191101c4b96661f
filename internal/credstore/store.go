// Package credstore provides durable client-side key-value storage for
// session credentials, surviving process restarts.
package credstore

import (
	"context"
	"errors"
)

// Storage keys. The token and the serialized user are independent keys
// written together on login and deleted together on logout.
const (
	KeyToken = "auth_token"
	KeyUser  = "auth_user"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("credstore: key not found")

// Store is a durable string key-value store. Writes are last-write-wins
// overwrites with no cross-key transactions.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TokenReader adapts a Store to the token source the platform client
// expects. It reads the current token on every call, so logout or token
// rotation is picked up by the next request.
type TokenReader struct {
	Store Store
}

// Token returns the stored bearer token, or empty when none is stored.
func (t TokenReader) Token(ctx context.Context) (string, error) {
	v, err := t.Store.Get(ctx, KeyToken)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}
