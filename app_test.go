package pubsite

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const testPosts = `posts:
  - id: intro
    title: Intro to Go
    date: "2024-01-10"
    tags: [Go]
    excerpt: Getting started.
  - id: web
    title: Go on the Web
    date: "2024-03-01"
    timestamp: "2024-03-01T09:30:00Z"
    tags: [Go, Web]
    excerpt: Serving pages.
    codeSnippet: 'e.GET("/", home)'
  - id: infra
    title: Terraform Notes
    date: "2024-02-01"
    tags: [Terraform]
    excerpt: State files & modules.
`

const testMarkdown = `---
subtitle: Serving HTML with echo
---

## Handlers

Use **echo** for routing.
`

// newTestApp builds an App over a temp site: posts.yaml, a hand-written
// posts/intro.html, a markdown posts/web.md and a static stylesheet.
func newTestApp(t *testing.T, opts ...Option) (*App, string) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"posts.yaml":            testPosts,
		"posts/intro.html":      "<html><body>hand written intro</body></html>",
		"posts/web.md":          testMarkdown,
		"public/css/styles.css": "body{}",
	}
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	a := New(SiteConfig{
		Name:          "Test Blog",
		URL:           "https://blog.example.com",
		Description:   "Notes",
		PostsFile:     filepath.Join(dir, "posts.yaml"),
		PostsDir:      filepath.Join(dir, "posts"),
		StaticDir:     filepath.Join(dir, "public"),
		OutputDir:     filepath.Join(dir, "dist"),
		SettingsPath:  filepath.Join(dir, "settings.db"),
		SessionSecret: "test-secret-test-secret-test-sec",
	}, opts...)
	a.Echo.Logger.SetOutput(io.Discard)
	return a, dir
}

func serve(a *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func get(a *App, target string) *httptest.ResponseRecorder {
	return serve(a, httptest.NewRequest(http.MethodGet, target, nil))
}
