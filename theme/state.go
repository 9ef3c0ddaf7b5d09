package theme

import "fmt"

// State is the two-state dark/light machine backed by a Storage.
// It is not safe for concurrent use; build one per caller.
type State struct {
	store   Storage
	current Theme
	loaded  bool
}

// NewState returns a State over s. Call Load to read the stored value.
func NewState(s Storage) *State {
	return &State{store: s, current: Default}
}

// Load reads the persisted preference. Missing or unknown values yield Dark.
// A storage failure also yields Dark and is returned as the error.
func (s *State) Load() (Theme, error) {
	s.loaded = true
	s.current = Default
	raw, err := s.store.Get(StorageKey)
	if err != nil {
		return s.current, fmt.Errorf("load theme: %w", err)
	}
	if t, ok := Parse(raw); ok {
		s.current = t
	}
	return s.current, nil
}

// Current returns the in-memory theme.
func (s *State) Current() Theme {
	return s.current
}

// Toggle flips the theme, persists it and returns the new value. If the
// write fails the current theme is left unchanged.
func (s *State) Toggle() (Theme, error) {
	if !s.loaded {
		// a failed read still leaves a usable default to flip from
		_, _ = s.Load()
	}
	next := s.current.Next()
	if err := s.store.Set(StorageKey, string(next)); err != nil {
		return s.current, fmt.Errorf("save theme: %w", err)
	}
	s.current = next
	return next, nil
}
