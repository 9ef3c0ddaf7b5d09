// Package kv provides small persistent string key-value stores used for
// site settings such as the theme preference.
package kv

import (
	"fmt"
	"strings"
)

// Store is a persistent string key-value store.
// Get returns "" and a nil error for a missing key.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Close() error
}

const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Open opens the store for driver at path.
func Open(driver, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverSQLite:
		return NewSQLiteStore(path)
	case DriverBolt, "bbolt":
		return NewBoltStore(path)
	default:
		return nil, fmt.Errorf("kv: unknown driver %q", driver)
	}
}
