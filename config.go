package pubsite

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/eringen/pubsite/kv"
	"github.com/eringen/pubsite/views"
)

// SiteConfig holds all configuration for a pubsite site. Field tags match
// the keys in pubsite.yaml and the PUBSITE_* environment variables.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (default "Blog")
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description"` // Site description for RSS and meta tags
	Author      string `mapstructure:"author"`      // Author name for JSON-LD

	Addr      string `mapstructure:"addr"`       // Listen address (default ":3000")
	PostsFile string `mapstructure:"posts_file"` // Post metadata (default "posts.yaml")
	PostsDir  string `mapstructure:"posts_dir"`  // Post bodies, {id}.html or {id}.md (default "posts")
	StaticDir string `mapstructure:"static_dir"` // Served under /public (default "public")
	OutputDir string `mapstructure:"output_dir"` // Static build target (default "dist")
	BasePath  string `mapstructure:"base_path"`  // Link prefix for the static build, e.g. "/blog"

	SettingsDriver string `mapstructure:"settings_driver"` // "sqlite" or "bolt"
	SettingsPath   string `mapstructure:"settings_path"`   // Settings database for the CLI and build

	SessionSecret string `mapstructure:"session_secret"` // Generated per process when empty
	CookieSecure  bool   `mapstructure:"cookie_secure"`  // Set true for HTTPS

	CacheTTL     time.Duration `mapstructure:"cache_ttl"`     // Catalog cache TTL (default 5min)
	RecentCount  int           `mapstructure:"recent_count"`  // Sidebar size (default 5)
	RelatedLimit int           `mapstructure:"related_limit"` // Related posts (default 3)
	ToggleLimit  int           `mapstructure:"toggle_limit"`  // Theme toggles per IP per minute (default 30)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PostsFile == "" {
		c.PostsFile = "posts.yaml"
	}
	if c.PostsDir == "" {
		c.PostsDir = "posts"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	c.BasePath = strings.TrimRight(c.BasePath, "/")
	if c.SettingsDriver == "" {
		c.SettingsDriver = kv.DriverSQLite
	}
	if c.SettingsPath == "" {
		c.SettingsPath = filepath.Join(xdg.DataHome, "pubsite", "settings.db")
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.RecentCount <= 0 {
		c.RecentCount = 5
	}
	if c.RelatedLimit <= 0 {
		c.RelatedLimit = 3
	}
	if c.ToggleLimit <= 0 {
		c.ToggleLimit = 30
	}
}

// Defaults returns cfg with every unset field filled in.
func Defaults(cfg SiteConfig) SiteConfig {
	cfg.setDefaults()
	return cfg
}

func (c SiteConfig) viewConfig() views.SiteConfig {
	return views.SiteConfig{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
		Author:      c.Author,
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithViews replaces the default components with the non-nil fields of v.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = a.Views.merge(v)
	}
}

// WithWatch reloads the catalog whenever the posts file changes on disk.
func WithWatch() Option {
	return func(a *App) {
		a.watch = true
	}
}
