package storage

import (
	"testing"
)

func TestFileKVRoundTrip(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKV() error: %v", err)
	}

	var missing map[string]string
	if found, err := kv.Get("revision-questions-p.json", &missing); err != nil || found {
		t.Errorf("Get() on missing key = (%v, %v), want (false, nil)", found, err)
	}

	want := map[string]bool{"1_a": true, "2_b": true}
	if err := kv.Put("revision-questions-p.json", want); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got := make(map[string]bool)
	found, err := kv.Get("revision-questions-p.json", &got)
	if err != nil || !found {
		t.Fatalf("Get() = (%v, %v), want (true, nil)", found, err)
	}
	if len(got) != 2 || !got["1_a"] || !got["2_b"] {
		t.Errorf("Get() = %v, want %v", got, want)
	}

	if err := kv.Delete("revision-questions-p.json"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if found, _ := kv.Get("revision-questions-p.json", &got); found {
		t.Error("key still present after Delete()")
	}

	// Deleting a missing key is fine
	if err := kv.Delete("revision-questions-p.json"); err != nil {
		t.Errorf("Delete() of missing key error: %v", err)
	}
}

func TestFileKVSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("NewFileKV() error: %v", err)
	}
	if err := kv.Put("gtu-learn-theme", map[string]string{"mode": "dark"}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	reopened, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	got := make(map[string]string)
	if found, err := reopened.Get("gtu-learn-theme", &got); err != nil || !found {
		t.Fatalf("Get() after reopen = (%v, %v), want (true, nil)", found, err)
	}
	if got["mode"] != "dark" {
		t.Errorf(`mode = %q, want "dark"`, got["mode"])
	}
}
