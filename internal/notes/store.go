// Package notes stores free-text notes per question. All papers share one
// map keyed "{paperID}::{questionID}".
package notes

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/gtu-learn/backend/internal/storage"
)

const (
	storageKey = "gtu-learn-notes-v1"
	separator  = "::"

	// DefaultPaperID is the namespace legacy notes are migrated under.
	// Early versions keyed notes by question id alone.
	DefaultPaperID = "default"
)

type Store struct {
	mu sync.Mutex
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

func noteKey(paperID, questionID string) string {
	return paperID + separator + questionID
}

// load reads the full notes map, migrating any legacy unnamespaced keys the
// first time they are seen. The migrated map is written back immediately so
// the migration runs at most once per legacy key.
func (s *Store) load() map[string]string {
	m := make(map[string]string)
	if _, err := s.kv.Get(storageKey, &m); err != nil {
		log.Printf("[notes] load: %v", err)
		return make(map[string]string)
	}

	migrated := false
	for key, text := range m {
		if !strings.Contains(key, separator) {
			delete(m, key)
			m[noteKey(DefaultPaperID, key)] = text
			migrated = true
		}
	}
	if migrated {
		s.save(m)
	}
	return m
}

func (s *Store) save(m map[string]string) {
	if err := s.kv.Put(storageKey, m); err != nil {
		log.Printf("[notes] save: %v", err)
	}
}

// Get returns the note text, or "" when none is stored.
func (s *Store) Get(questionID, paperID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()[noteKey(paperID, questionID)]
}

func (s *Store) Set(questionID, text, paperID string) error {
	if paperID == "" {
		return fmt.Errorf("paper id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.load()
	m[noteKey(paperID, questionID)] = text
	s.save(m)
	return nil
}

func (s *Store) Clear(questionID, paperID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.load()
	delete(m, noteKey(paperID, questionID))
	s.save(m)
}
