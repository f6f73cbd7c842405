package prefs

import "context"

// Ports for flat key-value persistence. Values live under a namespace (a
// named settings file in the mobile world) and a key inside it.
type (
	Reader interface {
		// GetString returns the value stored under namespace/key. ok is false
		// when nothing has been stored yet.
		GetString(ctx context.Context, namespace, key string) (value string, ok bool, err error)
	}

	Writer interface {
		// PutString replaces the value stored under namespace/key.
		PutString(ctx context.Context, namespace, key, value string) error
	}

	Store interface {
		Reader
		Writer
	}
)
