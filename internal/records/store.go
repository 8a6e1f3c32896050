// Package records persists finished check-ins as one JSON array stored under
// a single key of a storage.Provider.
package records

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/julianstephens/pausa/internal/constants"
	"github.com/julianstephens/pausa/internal/logger"
	"github.com/julianstephens/pausa/internal/models"
)

// KV is the subset of storage.Provider the record store needs
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store is not safe for concurrent use; callers serialize access on their
// event loop.
type Store struct {
	kv  KV
	key string
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv, key: constants.StorageKey}
}

// GetAll returns non-deleted records, newest first. Records with equal
// timestamps keep their stored order.
func (s *Store) GetAll() []models.CheckinRecord {
	entries := s.read()
	out := make([]models.CheckinRecord, 0, len(entries))
	for _, raw := range entries {
		rec, ok := decodeRecord(raw)
		if !ok || rec.Deleted {
			continue
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// GetByID reports ok=false when no live record has the id
func (s *Store) GetByID(id string) (models.CheckinRecord, bool) {
	for _, raw := range s.read() {
		rec, ok := decodeRecord(raw)
		if !ok || rec.Deleted || rec.ID != id {
			continue
		}
		return rec, true
	}
	return models.CheckinRecord{}, false
}

// Add appends rec. Ids are not checked for collisions.
func (s *Store) Add(rec models.CheckinRecord) error {
	raw, err := encodeRecord(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return s.write(append(s.read(), raw))
}

// Remove deletes every entry with id. Removing an unknown id is a no-op.
func (s *Store) Remove(id string) error {
	entries := s.read()
	kept := make([]json.RawMessage, 0, len(entries))
	removed := false
	for _, raw := range entries {
		entry, ok := entryID(raw)
		if !ok {
			removed = true
			continue
		}
		if entry == id {
			removed = true
			continue
		}
		kept = append(kept, raw)
	}
	if !removed {
		logger.Debug("remove: id not found", "id", id)
		return nil
	}
	return s.write(kept)
}

// ClearAll drops the whole collection
func (s *Store) ClearAll() error {
	if err := s.kv.Delete(s.key); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}

// Count returns the number of stored entries, including unreadable ones
func (s *Store) Count() int {
	return len(s.read())
}

// read never fails: missing, unreadable or malformed data is an empty collection
func (s *Store) read() []json.RawMessage {
	value, ok, err := s.kv.Get(s.key)
	if err != nil {
		logger.Warn("failed to read records, treating as empty", "error", err)
		return nil
	}
	if !ok || value == "" {
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		logger.Warn("stored records are not a JSON array, treating as empty", "error", err)
		return nil
	}
	return entries
}

func (s *Store) write(entries []json.RawMessage) error {
	if entries == nil {
		entries = []json.RawMessage{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	return nil
}
