// Package rating keeps the user's 1-5 difficulty rating per question,
// scoped by paper.
package rating

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/gtu-learn/backend/internal/storage"
)

type Store struct {
	mu sync.Mutex
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

func storageKey(paperID string) string {
	return fmt.Sprintf("question-ratings-%s", paperID)
}

func (s *Store) load(paperID string) map[string]int {
	ratings := make(map[string]int)
	if _, err := s.kv.Get(storageKey(paperID), &ratings); err != nil {
		log.Printf("[rating] load %s: %v", paperID, err)
		return make(map[string]int)
	}
	return ratings
}

func (s *Store) Set(paperID, questionID string, value int) error {
	if value < 1 || value > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ratings := s.load(paperID)
	ratings[questionID] = value
	if err := s.kv.Put(storageKey(paperID), ratings); err != nil {
		log.Printf("[rating] save %s: %v", paperID, err)
	}
	return nil
}

// Get returns the stored rating, or 0 for an unrated question.
func (s *Store) Get(paperID, questionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(paperID)[questionID]
}

func (s *Store) All(paperID string) map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(paperID)
}

// ConfidenceFromQuizRating maps the 1-10 difficulty rating collected in quiz
// mode onto the 1-5 confidence scale the progress tracker uses.
func ConfidenceFromQuizRating(rating int) int {
	if rating <= 0 {
		return 0
	}
	if rating > 10 {
		rating = 10
	}
	return int(math.Round(float64(rating) / 10 * 5))
}
