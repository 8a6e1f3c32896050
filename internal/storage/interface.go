package storage

import "github.com/julianstephens/pausa/internal/storage/sqlite"

// ErrNotInitialized is returned by Load when the backing file does not exist yet.
// All providers share the sqlite package's sentinel so errors.Is works across backends.
var ErrNotInitialized = sqlite.ErrNotInitialized

// Provider is a durable key-value collaborator. Values are opaque serialized
// payloads; the record store keeps its whole collection under one key.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Key-value access. Get reports ok=false for a missing key.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error

	// Utils
	GetConfigPath() string
}

// SchemaVersioner is implemented by providers that track a schema version
type SchemaVersioner interface {
	SchemaVersion() (current, latest int, err error)
	Migrate(logFn func(string)) (int, error)
}
