// Package settings persists small UI preferences. Currently just the theme.
package settings

import (
	"fmt"
	"log"
	"sync"

	"github.com/gtu-learn/backend/internal/storage"
)

const themeKey = "gtu-learn-theme"

type Theme struct {
	Mode string `json:"mode"`
}

var validModes = map[string]bool{"light": true, "dark": true}

type Store struct {
	mu sync.Mutex
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// GetTheme returns the stored theme, defaulting to light.
func (s *Store) GetTheme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	theme := Theme{Mode: "light"}
	if _, err := s.kv.Get(themeKey, &theme); err != nil {
		log.Printf("[settings] load theme: %v", err)
		return Theme{Mode: "light"}
	}
	if !validModes[theme.Mode] {
		theme.Mode = "light"
	}
	return theme
}

func (s *Store) SetTheme(mode string) (Theme, error) {
	if !validModes[mode] {
		return Theme{}, fmt.Errorf("mode must be 'light' or 'dark'")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	theme := Theme{Mode: mode}
	if err := s.kv.Put(themeKey, theme); err != nil {
		log.Printf("[settings] save theme: %v", err)
	}
	return theme, nil
}
