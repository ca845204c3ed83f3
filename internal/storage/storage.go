package storage

import "errors"

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("storage: key not found")

// KV is a small key-value byte store used for reload-survival of local
// state. Implementations can use the filesystem, memory, or any other
// backend; callers own the serialization format of the values they store.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value string) error
}
