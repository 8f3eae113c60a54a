package dashboard

import "errors"

// ErrKeyNotFound is returned by Storage.Get for absent keys.
var ErrKeyNotFound = errors.New("dashboard: key not found")

// Storage is the persistent key-value store backing the client session
// state, the Go analog of browser localStorage. Implementations:
// memory (tests), bolt (local file), redis (shared between replicas).
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}
