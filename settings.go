package pubsite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/eringen/pubsite/kv"
	"github.com/eringen/pubsite/theme"
)

// OpenSettings opens the settings store named by cfg, creating its
// directory if needed. The CLI and the static build keep the theme
// preference there; served visitors keep theirs in a session cookie.
func OpenSettings(cfg SiteConfig) (kv.Store, error) {
	cfg.setDefaults()
	if err := os.MkdirAll(filepath.Dir(cfg.SettingsPath), 0o755); err != nil {
		return nil, fmt.Errorf("pubsite: settings dir: %w", err)
	}
	s, err := kv.Open(cfg.SettingsDriver, cfg.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("pubsite: open settings: %w", err)
	}
	return s, nil
}

// StoredTheme returns the theme saved in s, or the default.
func StoredTheme(s kv.Store) (theme.Theme, error) {
	return theme.NewState(s).Load()
}
