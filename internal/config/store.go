package config

import "sync"

// Store remembers the last settings a front end applied, so the next run
// can start from them instead of Defaults.
type Store struct {
	mu      sync.RWMutex
	last    Settings
	applied bool
}

// NewStore creates a store seeded with Defaults.
func NewStore() *Store {
	return &Store{last: Defaults()}
}

// Last returns the last remembered settings
func (s *Store) Last() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Applied reports whether Remember has been called at least once
func (s *Store) Applied() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applied
}

// Remember records settings that were just applied
func (s *Store) Remember(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = settings
	s.applied = true
}

// SetBlendWidth updates only the blend width.
func (s *Store) SetBlendWidth(width int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if width < 1 {
		width = 1
	}
	s.last.BlendWidth = width
}

// SetOctaves updates only the octave count.
func (s *Store) SetOctaves(octaves int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if octaves < 1 {
		octaves = 1
	}
	s.last.Octaves = octaves
}
