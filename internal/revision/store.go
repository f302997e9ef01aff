// Package revision tracks which questions the user has flagged for revision,
// as one persisted set of question ids per paper.
package revision

import (
	"fmt"
	"log"
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
	return fmt.Sprintf("revision-questions-%s", paperID)
}

// load reads the paper's revision set. Storage failures degrade to an empty
// set — a broken backend must never surface as a hard error here.
func (s *Store) load(paperID string) []string {
	var ids []string
	if _, err := s.kv.Get(storageKey(paperID), &ids); err != nil {
		log.Printf("[revision] load %s: %v", paperID, err)
		return nil
	}
	return ids
}

func (s *Store) save(paperID string, ids []string) {
	if ids == nil {
		ids = []string{}
	}
	if err := s.kv.Put(storageKey(paperID), ids); err != nil {
		log.Printf("[revision] save %s: %v", paperID, err)
	}
}

// Toggle flips the question's membership in the paper's revision set and
// returns the new state.
func (s *Store) Toggle(paperID, questionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.load(paperID)
	for i, id := range ids {
		if id == questionID {
			s.save(paperID, append(ids[:i], ids[i+1:]...))
			return false
		}
	}
	s.save(paperID, append(ids, questionID))
	return true
}

func (s *Store) IsMarked(paperID, questionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.load(paperID) {
		if id == questionID {
			return true
		}
	}
	return false
}

func (s *Store) Count(paperID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.load(paperID))
}

func (s *Store) List(paperID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.load(paperID)
	if ids == nil {
		ids = []string{}
	}
	return ids
}

// AdoptLegacy folds a revision set stored under the old
// "{subject_code}_{examination}" identifier into the canonical filename key.
// Earlier versions keyed some papers one way and some the other; this
// reconciles them the first time the paper is seen. Idempotent.
func (s *Store) AdoptLegacy(paperID, legacyID string) {
	if legacyID == "" || legacyID == paperID {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	legacy := s.load(legacyID)
	if len(legacy) == 0 {
		return
	}

	current := s.load(paperID)
	seen := make(map[string]bool, len(current))
	for _, id := range current {
		seen[id] = true
	}
	for _, id := range legacy {
		if !seen[id] {
			current = append(current, id)
		}
	}

	s.save(paperID, current)
	if err := s.kv.Delete(storageKey(legacyID)); err != nil {
		log.Printf("[revision] drop legacy key %s: %v", legacyID, err)
	}
}
