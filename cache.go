package pubsite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"

	"github.com/eringen/pubsite/catalog"
)

// CatalogCache holds the catalog built from the posts file and rebuilds it
// once the TTL expires or after Invalidate. Each rebuild produces a new
// immutable Catalog, so callers may keep the one they got. When a rebuild
// fails the last good catalog keeps being served.
type CatalogCache struct {
	mu      sync.RWMutex
	cat     *catalog.Catalog
	stale   bool
	fetched time.Time
	ttl     time.Duration
	path    string
	logger  echo.Logger
}

// NewCatalogCache creates a CatalogCache reading the posts file at path.
func NewCatalogCache(path string, ttl time.Duration, logger echo.Logger) *CatalogCache {
	return &CatalogCache{path: path, ttl: ttl, logger: logger}
}

func (c *CatalogCache) valid() bool {
	return c.cat != nil && !c.stale && time.Since(c.fetched) < c.ttl
}

// Invalidate marks the cache stale so the next read triggers a fresh load.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
}

func (c *CatalogCache) load() error {
	if c.valid() {
		return nil
	}
	cat, err := c.build()
	if err != nil {
		if c.cat == nil {
			return err
		}
		// Retried after the next Invalidate or once the TTL expires.
		c.logger.Errorf("catalog: reload %s: %v; serving the previous catalog", c.path, err)
		cat = c.cat
	}
	c.cat = cat
	c.stale = false
	c.fetched = time.Now()
	return nil
}

func (c *CatalogCache) build() (*catalog.Catalog, error) {
	posts, err := catalog.LoadFile(c.path)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.New(posts)
	if err != nil {
		var derr catalog.DataError
		if !errors.As(err, &derr) {
			return nil, err
		}
		for _, item := range derr.Items {
			c.logger.Warnf("catalog: %v", item)
		}
	}
	return cat, nil
}

// Catalog returns the current catalog, loading it first if the cache is
// empty or stale. It tries a read lock first; only takes a write lock if a
// reload is needed.
func (c *CatalogCache) Catalog() (*catalog.Catalog, error) {
	c.mu.RLock()
	if c.valid() {
		cat := c.cat
		c.mu.RUnlock()
		return cat, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.cat, nil
}

// Watch invalidates the cache whenever the posts file is written, created
// or renamed. It blocks until ctx is done. The parent directory is watched
// so editors that replace the file on save are handled.
func (c *CatalogCache) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(c.path)
	if err := w.Add(dir); err != nil {
		return err
	}
	target := filepath.Clean(c.path)
	c.logger.Infof("watching %s for changes", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			c.logger.Infof("%s changed, reloading posts", target)
			c.Invalidate()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.logger.Errorf("watch %s: %v", target, err)
		}
	}
}
