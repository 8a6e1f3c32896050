package storage

import (
	"path/filepath"
	"strings"

	"github.com/julianstephens/pausa/internal/storage/sqlite"
)

// Open picks a provider for path: ":memory:" keeps everything in process,
// a .json suffix selects the JSON file store, anything else is SQLite.
func Open(path string) Provider {
	switch {
	case path == ":memory:":
		return NewMemoryStore()
	case strings.EqualFold(filepath.Ext(path), ".json"):
		return NewJSONStore(path)
	default:
		return sqlite.NewStore(path)
	}
}
