package notes

import (
	"testing"

	"github.com/gtu-learn/backend/internal/storage"
)

func TestRoundTrip(t *testing.T) {
	store := NewStore(storage.NewMemoryKV())

	if err := store.Set("1_a", "remember the formula", "paper.json"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if got := store.Get("1_a", "paper.json"); got != "remember the formula" {
		t.Errorf("Get() = %q, want %q", got, "remember the formula")
	}

	// Same question id under a different paper is a different note
	if got := store.Get("1_a", "other.json"); got != "" {
		t.Errorf("Get() on other paper = %q, want empty", got)
	}

	store.Clear("1_a", "paper.json")
	if got := store.Get("1_a", "paper.json"); got != "" {
		t.Errorf("Get() after Clear() = %q, want empty", got)
	}
}

func TestLegacyMigration(t *testing.T) {
	kv := storage.NewMemoryKV()

	// Seed a pre-namespacing map: one legacy key, one already namespaced.
	kv.Put("gtu-learn-notes-v1", map[string]string{
		"Q1_a":             "foo",
		"paper.json::Q2_a": "bar",
	})

	store := NewStore(kv)

	if got := store.Get("Q1_a", DefaultPaperID); got != "foo" {
		t.Errorf("legacy note = %q, want %q under default paper", got, "foo")
	}
	if got := store.Get("Q2_a", "paper.json"); got != "bar" {
		t.Errorf("namespaced note = %q, want %q", got, "bar")
	}

	// The migrated form was written back: the raw map no longer carries
	// the unnamespaced key.
	var raw map[string]string
	if _, err := kv.Get("gtu-learn-notes-v1", &raw); err != nil {
		t.Fatalf("read raw map: %v", err)
	}
	if _, ok := raw["Q1_a"]; ok {
		t.Error("unnamespaced key survived migration")
	}
	if raw["default::Q1_a"] != "foo" {
		t.Errorf(`raw["default::Q1_a"] = %q, want "foo"`, raw["default::Q1_a"])
	}

	// Migration is idempotent across loads
	store2 := NewStore(kv)
	if got := store2.Get("Q1_a", DefaultPaperID); got != "foo" {
		t.Errorf("second load legacy note = %q, want %q", got, "foo")
	}
}
