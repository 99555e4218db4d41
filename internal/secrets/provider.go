// Package secrets resolves named configuration values such as OAuth client
// credentials at call time.
package secrets

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a name has no value.
var ErrNotFound = errors.New("secret not found")

// Provider looks up a secret by name. Implementations do not cache.
type Provider interface {
	Get(ctx context.Context, name string) (string, error)
}

// Static serves secrets from an in-memory map.
type Static map[string]string

// Get implements Provider.
func (s Static) Get(_ context.Context, name string) (string, error) {
	v, ok := s[name]
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return v, nil
}
