package records

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/pausa/internal/constants"
	"github.com/julianstephens/pausa/internal/models"
	"github.com/julianstephens/pausa/internal/storage"
)

func setupTestStore(t *testing.T) (*Store, *storage.MemoryStore) {
	t.Helper()
	kv := storage.NewMemoryStore()
	return NewStore(kv), kv
}

func strPtr(s string) *string { return &s }

func record(id string, at time.Time) models.CheckinRecord {
	return models.CheckinRecord{
		ID:            id,
		CreatedAt:     at,
		Intensity:     models.IntensityNeutro,
		ClarityAnswer: models.ClarityNaoSei,
		MicroPause:    models.PauseAgua,
	}
}

func ids(recs []models.CheckinRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestGetAllNewestFirst(t *testing.T) {
	store, _ := setupTestStore(t)
	base := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

	for _, rec := range []models.CheckinRecord{
		record("a", base),
		record("b", base.Add(2*time.Hour)),
		record("c", base.Add(time.Hour)),
		record("d", base.Add(2*time.Hour)),
	} {
		if err := store.Add(rec); err != nil {
			t.Fatalf("Add(%s) failed: %v", rec.ID, err)
		}
	}

	want := []string{"b", "d", "c", "a"}
	if diff := cmp.Diff(want, ids(store.GetAll())); diff != "" {
		t.Errorf("GetAll() order mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripKeepsFields(t *testing.T) {
	store, _ := setupTestStore(t)
	rec := models.CheckinRecord{
		ID:            "x",
		CreatedAt:     time.Date(2026, 10, 14, 9, 12, 33, 120_000_000, time.UTC),
		Intensity:     models.IntensityPesado,
		Theme:         strPtr("trabalho"),
		Note:          strPtr("me sinto cansado"),
		ClarityAnswer: models.ClarityAcolhimento,
		MicroPause:    models.PauseRespirar,
	}
	if err := store.Add(rec); err != nil {
		t.Fatal(err)
	}

	got, ok := store.GetByID("x")
	if !ok {
		t.Fatal("GetByID(x) not found")
	}
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestWireFormat(t *testing.T) {
	store, kv := setupTestStore(t)
	rec := record("x", time.Date(2026, 10, 14, 9, 12, 33, 0, time.UTC))
	if err := store.Add(rec); err != nil {
		t.Fatal(err)
	}

	raw, _, _ := kv.Get(constants.StorageKey)
	for _, want := range []string{
		`"id":"x"`,
		`"created_at":"2026-10-14T09:12:33.000Z"`,
		`"theme":null`,
		`"text":null`,
		`"clarity_answer":"nao_sei"`,
		`"micro_pause":"agua"`,
		`"deleted":false`,
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("stored JSON %s missing %s", raw, want)
		}
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store, kv := setupTestStore(t)
	if _, ok := store.GetByID("nope"); ok {
		t.Error("GetByID on empty store should report not found")
	}

	kv.Set(constants.StorageKey, `[{"id":"gone","created_at":"2026-01-01T00:00:00.000Z","intensity":"leve","clarity_answer":"acao","deleted":true}]`)
	if _, ok := store.GetByID("gone"); ok {
		t.Error("deleted record should be treated as not found")
	}
	if len(store.GetAll()) != 0 {
		t.Error("deleted record should not be listed")
	}
}

func TestRemove(t *testing.T) {
	store, _ := setupTestStore(t)
	base := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	store.Add(record("a", base))
	store.Add(record("b", base.Add(time.Minute)))

	if err := store.Remove("a"); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if _, ok := store.GetByID("a"); ok {
		t.Error("removed record still found")
	}
	if diff := cmp.Diff([]string{"b"}, ids(store.GetAll())); diff != "" {
		t.Errorf("remaining records mismatch (-want +got):\n%s", diff)
	}

	if err := store.Remove("does-not-exist"); err != nil {
		t.Errorf("Remove() of unknown id should be a no-op, got %v", err)
	}
	if store.Count() != 1 {
		t.Errorf("Count() = %d, want 1", store.Count())
	}
}

func TestRemoveKeepsUnknownFields(t *testing.T) {
	store, kv := setupTestStore(t)
	kv.Set(constants.StorageKey, `[{"id":"keep","extra":{"nested":1}},{"id":"drop"}]`)

	if err := store.Remove("drop"); err != nil {
		t.Fatal(err)
	}
	raw, _, _ := kv.Get(constants.StorageKey)
	if !strings.Contains(raw, `"extra":{"nested":1}`) {
		t.Errorf("Remove() rewrote untouched entries: %s", raw)
	}
}

func TestClearAll(t *testing.T) {
	store, kv := setupTestStore(t)
	store.Add(record("a", time.Now()))

	if err := store.ClearAll(); err != nil {
		t.Fatalf("ClearAll() failed: %v", err)
	}
	if len(store.GetAll()) != 0 {
		t.Error("GetAll() after ClearAll should be empty")
	}
	if _, ok, _ := kv.Get(constants.StorageKey); ok {
		t.Error("ClearAll should delete the storage key")
	}
	if err := store.ClearAll(); err != nil {
		t.Errorf("ClearAll() on empty store = %v", err)
	}
}

func TestCorruptDataDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"invalid json", `{not json`},
		{"object instead of array", `{"id":"a"}`},
		{"number", `42`},
		{"null", `null`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, kv := setupTestStore(t)
			kv.Set(constants.StorageKey, tt.value)
			if got := store.GetAll(); len(got) != 0 {
				t.Errorf("GetAll() = %v, want empty", got)
			}

			if err := store.Add(record("fresh", time.Now())); err != nil {
				t.Fatalf("Add() after corruption failed: %v", err)
			}
			if diff := cmp.Diff([]string{"fresh"}, ids(store.GetAll())); diff != "" {
				t.Errorf("records after recovery mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSkipsNullAndBadEntries(t *testing.T) {
	store, kv := setupTestStore(t)
	kv.Set(constants.StorageKey, `[null,"oops",{"id":"ok","created_at":"2026-10-14T09:00:00.000Z","intensity":"leve","clarity_answer":"acao","micro_pause":null}]`)

	got := store.GetAll()
	if diff := cmp.Diff([]string{"ok"}, ids(got)); diff != "" {
		t.Fatalf("GetAll() mismatch (-want +got):\n%s", diff)
	}
	if got[0].MicroPause != "" {
		t.Errorf("null micro_pause should decode as unset, got %q", got[0].MicroPause)
	}
	if store.Count() != 3 {
		t.Errorf("Count() = %d, want raw count 3", store.Count())
	}
}

func TestReadErrorDegradesToEmpty(t *testing.T) {
	store, kv := setupTestStore(t)
	store.Add(record("a", time.Now()))
	kv.FailGet = errors.New("disk gone")

	if got := store.GetAll(); len(got) != 0 {
		t.Errorf("GetAll() with failing backend = %v, want empty", got)
	}
	if _, ok := store.GetByID("a"); ok {
		t.Error("GetByID with failing backend should report not found")
	}
}

func TestWriteErrorIsReturned(t *testing.T) {
	store, kv := setupTestStore(t)
	kv.FailSet = errors.New("read-only")

	if err := store.Add(record("a", time.Now())); err == nil {
		t.Error("Add() should return the write error")
	}
	if err := store.ClearAll(); err == nil {
		t.Error("ClearAll() should return the delete error")
	}
}

func TestUnparsableTimestampSortsLast(t *testing.T) {
	store, kv := setupTestStore(t)
	kv.Set(constants.StorageKey, `[{"id":"bad","created_at":"yesterday","intensity":"leve","clarity_answer":"acao"},{"id":"good","created_at":"2026-10-14T09:00:00+02:00","intensity":"leve","clarity_answer":"acao"}]`)

	if diff := cmp.Diff([]string{"good", "bad"}, ids(store.GetAll())); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}
