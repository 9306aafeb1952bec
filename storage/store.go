// Package storage holds the durable key-value backends the cart is persisted to.
// Every backend stores opaque string values and replaces the whole value on write.
package storage

import "context"

type Store interface {
	// GetItem returns the value stored under key. found is false when the key is absent.
	GetItem(ctx context.Context, key string) (value string, found bool, err error)

	// SetItem replaces the value stored under key.
	SetItem(ctx context.Context, key string, value string) error

	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(ctx context.Context, key string) error
}
