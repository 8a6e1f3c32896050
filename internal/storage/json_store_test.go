package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pausa.json")

	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	if _, ok, err := store.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok:%v err:%v, want ok:false err:nil", ok, err)
	}

	if err := store.Set("k", `[{"id":"1"}]`); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	got, ok, err := reopened.Get("k")
	if err != nil || !ok {
		t.Fatalf("Get(k) after reload = ok:%v err:%v", ok, err)
	}
	if got != `[{"id":"1"}]` {
		t.Errorf("Get(k) = %q, want the stored payload", got)
	}

	if err := reopened.Delete("k"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := reopened.Get("k"); ok {
		t.Error("key still present after Delete")
	}
	if err := reopened.Delete("k"); err != nil {
		t.Errorf("Delete() of a missing key should be a no-op, got %v", err)
	}
}

func TestJSONStoreInitKeepsExistingData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pausa.json")
	first := NewJSONStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := first.Set("k", "v"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	second := NewJSONStore(path)
	if err := second.Init(); err != nil {
		t.Fatalf("second Init() failed: %v", err)
	}
	if v, ok, _ := second.Get("k"); !ok || v != "v" {
		t.Errorf("Init() on existing file lost data: got %q ok=%v", v, ok)
	}
}

func TestJSONStoreLoadErrors(t *testing.T) {
	dir := t.TempDir()

	missing := NewJSONStore(filepath.Join(dir, "nope.json"))
	if err := missing.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Load() on missing file = %v, want ErrNotInitialized", err)
	}

	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewJSONStore(corrupt).Load(); err == nil {
		t.Error("Load() on corrupt file should fail")
	}

	unloaded := NewJSONStore(filepath.Join(dir, "unloaded.json"))
	if _, _, err := unloaded.Get("k"); err == nil {
		t.Error("Get() before Load should fail")
	}
}

func TestMemoryStoreFailureInjection(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	boom := errors.New("disk on fire")
	store.FailGet = boom
	if _, _, err := store.Get("k"); !errors.Is(err, boom) {
		t.Errorf("Get() = %v, want injected error", err)
	}

	store.FailGet = nil
	store.FailSet = boom
	if err := store.Set("k", "w"); !errors.Is(err, boom) {
		t.Errorf("Set() = %v, want injected error", err)
	}
	if v, _, _ := store.Get("k"); v != "v" {
		t.Errorf("failed Set() changed the value to %q", v)
	}
}

func TestOpenSelectsProvider(t *testing.T) {
	if _, ok := Open(":memory:").(*MemoryStore); !ok {
		t.Error(`Open(":memory:") should return a MemoryStore`)
	}
	if _, ok := Open("/tmp/x/pausa.JSON").(*JSONStore); !ok {
		t.Error("Open(*.json) should return a JSONStore")
	}
	if p := Open("/tmp/x/pausa.db"); p.GetConfigPath() != "/tmp/x/pausa.db" {
		t.Errorf("Open(*.db) path = %q", p.GetConfigPath())
	}
}
