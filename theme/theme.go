// Package theme manages the persisted dark/light colour preference.
package theme

import "sync"

// Theme is the site colour scheme.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// StorageKey is the key the preference is persisted under.
const StorageKey = "theme"

// Default is used when nothing valid has been stored.
const Default = Dark

// Parse returns the theme named by s, or false if s is not a theme.
func Parse(s string) (Theme, bool) {
	switch Theme(s) {
	case Dark, Light:
		return Theme(s), true
	}
	return "", false
}

// Next returns the other theme.
func (t Theme) Next() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Icon is the glyph shown on the toggle button: the sun switches to light,
// the moon back to dark.
func (t Theme) Icon() string {
	if t == Dark {
		return "☀️"
	}
	return "🌙"
}

func (t Theme) String() string {
	return string(t)
}

// Storage is a minimal string key-value store.
// Get returns "" and a nil error for a missing key.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// MemoryStorage is an in-process Storage. The zero value is ready to use.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	m.mu.Unlock()
	return nil
}
