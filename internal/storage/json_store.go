package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type jsonFile struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// JSONStore keeps all keys in a single JSON document on disk.
// Every write rewrites the file through a temp file and rename.
type JSONStore struct {
	path string
	data *jsonFile
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.data = &jsonFile{
		Version: 1,
		Values:  make(map[string]string),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	data := &jsonFile{}
	if err := json.Unmarshal(raw, data); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if data.Values == nil {
		data.Values = make(map[string]string)
	}
	s.data = data
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) (string, bool, error) {
	if s.data == nil {
		return "", false, fmt.Errorf("storage not loaded")
	}
	v, ok := s.data.Values[key]
	return v, ok, nil
}

func (s *JSONStore) Set(key, value string) error {
	if s.data == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.data.Values[key] = value
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	if s.data == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.data.Values[key]; !ok {
		return nil
	}
	delete(s.data.Values, key)
	return s.save()
}
