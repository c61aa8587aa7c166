// Package metadata is the client's key-value table. Every locally persisted
// record (preferences, reading counters, saved articles, session cookies)
// lives under one key as schema-free JSON.
package metadata

import (
	"context"
)

// Repository is a byte-valued key-value store. Get returns (nil, nil) for an
// absent key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) (map[string][]byte, error)
	// Update runs fn against a repository whose writes are committed
	// together, or not at all when fn returns an error.
	Update(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
