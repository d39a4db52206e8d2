// Package kv defines the key-value persistence port the record and roster
// stores are written against.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written or was deleted.
var ErrNotFound = errors.New("kv: key not found")

// Ports for outbound adapters.
type (
	Reader interface {
		Get(ctx context.Context, key string) ([]byte, error)
	}

	Writer interface {
		// Set replaces the whole value stored under key.
		Set(ctx context.Context, key string, value []byte) error
		// Delete removes key. Deleting a missing key is not an error.
		Delete(ctx context.Context, key string) error
	}

	// Lister enumerates stored keys sharing a prefix, sorted ascending.
	Lister interface {
		Keys(ctx context.Context, prefix string) ([]string, error)
	}

	Store interface {
		Reader
		Writer
		Lister
	}
)
