package rating

import (
	"testing"

	"github.com/gtu-learn/backend/internal/storage"
)

func TestSetAndGet(t *testing.T) {
	store := NewStore(storage.NewMemoryKV())

	if got := store.Get("paper.json", "1_a"); got != 0 {
		t.Errorf("Get() on unrated question = %d, want 0", got)
	}

	if err := store.Set("paper.json", "1_a", 4); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if got := store.Get("paper.json", "1_a"); got != 4 {
		t.Errorf("Get() = %d, want 4", got)
	}

	// Ratings are paper-scoped
	if got := store.Get("other.json", "1_a"); got != 0 {
		t.Errorf("Get() on other paper = %d, want 0", got)
	}
}

func TestSetRejectsOutOfRange(t *testing.T) {
	store := NewStore(storage.NewMemoryKV())

	for _, v := range []int{0, -1, 6, 100} {
		if err := store.Set("paper.json", "1_a", v); err == nil {
			t.Errorf("Set(%d) accepted, want error", v)
		}
	}
}

func TestConfidenceFromQuizRating(t *testing.T) {
	tests := []struct {
		rating int
		want   int
	}{
		{0, 0},
		{1, 1},  // 0.5 rounds to 1
		{2, 1},
		{3, 2},  // 1.5 rounds to 2
		{4, 2},
		{5, 3},  // 2.5 rounds to 3
		{6, 3},
		{7, 4},  // 3.5 rounds to 4
		{8, 4},
		{9, 5},  // 4.5 rounds to 5
		{10, 5},
		{15, 5}, // clamped
	}

	for _, tt := range tests {
		if got := ConfidenceFromQuizRating(tt.rating); got != tt.want {
			t.Errorf("ConfidenceFromQuizRating(%d) = %d, want %d", tt.rating, got, tt.want)
		}
	}
}
