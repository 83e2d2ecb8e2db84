// Package auth supplies the service credential used for backend calls.
// The fortune store treats a missing token as a hard precondition
// failure and never contacts the network without one.
package auth

import (
	"context"
	"errors"
)

// ErrNoToken signals that no credential is currently stored.
var ErrNoToken = errors.New("auth: no token available")

// TokenProvider supplies the current credential or ErrNoToken.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Static returns a fixed token, typically injected via environment.
type Static struct {
	Value string
}

func (s Static) Token(ctx context.Context) (string, error) {
	_ = ctx
	if s.Value == "" {
		return "", ErrNoToken
	}
	return s.Value, nil
}
