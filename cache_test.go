package pubsite

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/eringen/pubsite/catalog"
)

const onePost = `posts:
  - id: only
    title: Only
    date: "2024-01-01"
`

func quietLogger() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}

func writePosts(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCatalogCacheServesUntilInvalidated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.yaml")
	writePosts(t, path, onePost)
	c := NewCatalogCache(path, time.Hour, quietLogger())

	cat, err := c.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if cat.Len() != 1 {
		t.Fatalf("Len = %d", cat.Len())
	}

	writePosts(t, path, testPosts)
	if cat, _ := c.Catalog(); cat.Len() != 1 {
		t.Errorf("cache reloaded before TTL or Invalidate: Len = %d", cat.Len())
	}

	c.Invalidate()
	cat2, err := c.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if cat2.Len() != 3 {
		t.Errorf("after Invalidate Len = %d, want 3", cat2.Len())
	}
	if cat.Len() != 1 {
		t.Error("catalog handed out earlier must not change")
	}
}

func TestCatalogCacheExpires(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.yaml")
	writePosts(t, path, onePost)
	c := NewCatalogCache(path, time.Millisecond, quietLogger())
	if _, err := c.Catalog(); err != nil {
		t.Fatal(err)
	}
	writePosts(t, path, testPosts)
	time.Sleep(5 * time.Millisecond)
	cat, err := c.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if cat.Len() != 3 {
		t.Errorf("Len = %d after TTL, want 3", cat.Len())
	}
}

func TestCatalogCacheKeepsPostsWithBadDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.yaml")
	writePosts(t, path, `posts:
  - id: good
    title: Good
    date: "2024-01-01"
  - id: bad
    title: Bad
    date: "someday"
`)
	cat, err := NewCatalogCache(path, time.Hour, quietLogger()).Catalog()
	if err != nil {
		t.Fatalf("bad dates should only be logged: %v", err)
	}
	all := cat.All()
	if len(all) != 2 || all[1].ID != "bad" {
		t.Errorf("posts = %+v", all)
	}
}

func TestCatalogCacheMissingFile(t *testing.T) {
	c := NewCatalogCache(filepath.Join(t.TempDir(), "nope.yaml"), time.Hour, quietLogger())
	if _, err := c.Catalog(); err == nil {
		t.Fatal("expected an error for a missing posts file")
	}
}

func TestCatalogCacheKeepsLastGoodCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.yaml")
	writePosts(t, path, testPosts)
	c := NewCatalogCache(path, time.Hour, quietLogger())
	if _, err := c.Catalog(); err != nil {
		t.Fatal(err)
	}

	writePosts(t, path, "posts:\n  - id: [half saved")
	c.Invalidate()
	cat, err := c.Catalog()
	if err != nil {
		t.Fatalf("broken reload should keep serving: %v", err)
	}
	if cat.Len() != 3 {
		t.Errorf("Len = %d, want the previous 3", cat.Len())
	}

	writePosts(t, path, onePost)
	c.Invalidate()
	if cat, err := c.Catalog(); err != nil || cat.Len() != 1 {
		t.Errorf("fixed file not picked up: err = %v", err)
	}
}

func TestCatalogCacheWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.yaml")
	writePosts(t, path, onePost)
	c := NewCatalogCache(path, time.Hour, quietLogger())
	if _, err := c.Catalog(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Watch(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for {
		// Rewrite until the watcher has been registered and noticed.
		writePosts(t, path, testPosts)
		time.Sleep(50 * time.Millisecond)
		cat, err := c.Catalog()
		if err != nil {
			t.Fatal(err)
		}
		if cat.Len() == 3 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("watcher never invalidated the cache")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Watch did not return after cancel")
	}
}

func TestCatalogCacheByIDNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.yaml")
	writePosts(t, path, onePost)
	cat, err := NewCatalogCache(path, time.Hour, quietLogger()).Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cat.ByID("missing"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("err = %v", err)
	}
}
