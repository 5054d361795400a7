// Package store provides the client's local keyed persistence surface.
// The session layer writes exactly two entries (token, user profile) through
// it; the repository itself is generic key/value.
package store

import "context"

// Repository is a keyed byte store. A missing key yields (nil, nil), not an
// error; callers treat absent and present-but-empty alike.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
