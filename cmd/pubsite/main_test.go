package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eringen/pubsite/catalog"
	"github.com/eringen/pubsite/scaffold"
)

const testPosts = `posts:
  - id: intro
    title: Intro to Go
    date: "2024-01-10"
    tags: [Go]
    excerpt: First.
  - id: web
    title: Go on the Web
    date: "2024-03-01"
    tags: [Go, Web]
    excerpt: Second.
  - id: infra
    title: Terraform Notes
    date: "2024-02-01"
    tags: [Terraform]
    excerpt: Third.
`

// setup writes a config file pointing every path into a temp dir.
func setup(t *testing.T) (cfgPath, dir string) {
	t.Helper()
	dir = t.TempDir()
	postsFile := filepath.Join(dir, "posts.yaml")
	if err := os.WriteFile(postsFile, []byte(testPosts), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := fmt.Sprintf(`name: Test Blog
url: https://blog.example.com
posts_file: %q
posts_dir: %q
static_dir: %q
output_dir: %q
settings_path: %q
`, postsFile, filepath.Join(dir, "posts"), filepath.Join(dir, "public"),
		filepath.Join(dir, "dist"), filepath.Join(dir, "data", "settings.db"))
	cfgPath = filepath.Join(dir, "pubsite.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath, dir
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestNewCommand(t *testing.T) {
	cfgPath, dir := setup(t)

	out, err := run(t, cfgPath, "new", "Docker Best Practices", "docker-best-practices", "Docker,DevOps")
	if err != nil {
		t.Fatalf("new: %v\n%s", err, out)
	}
	path := filepath.Join(dir, "posts", "docker-best-practices.html")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("post file not created: %v", err)
	}
	for _, want := range []string{"Created: " + path, "- id: docker-best-practices", "Next steps:", scaffold.DefaultExcerpt} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	_, err = run(t, cfgPath, "new", "Docker Best Practices", "docker-best-practices")
	if !errors.Is(err, scaffold.ErrExists) {
		t.Fatalf("second new: err = %v, want ErrExists", err)
	}
}

func TestNewCommandNeedsTitleAndSlug(t *testing.T) {
	cfgPath, dir := setup(t)
	if _, err := run(t, cfgPath, "new", "Only a title"); err == nil {
		t.Fatal("expected an error with one argument")
	}
	if _, err := os.Stat(filepath.Join(dir, "posts")); !os.IsNotExist(err) {
		t.Errorf("posts dir should not be created: %v", err)
	}
}

func TestPostsCommand(t *testing.T) {
	cfgPath, _ := setup(t)

	out, err := run(t, cfgPath, "posts", "--tag", "Go")
	if err != nil {
		t.Fatalf("posts: %v", err)
	}
	if !strings.Contains(out, "Posts tagged Go (2)") {
		t.Errorf("heading missing:\n%s", out)
	}
	if strings.Index(out, "Go on the Web") > strings.Index(out, "Intro to Go") {
		t.Errorf("posts not newest first:\n%s", out)
	}
	if strings.Contains(out, "Terraform Notes") {
		t.Errorf("tag filter not applied:\n%s", out)
	}

	out, err = run(t, cfgPath, "posts", "--related", "intro")
	if err != nil {
		t.Fatalf("posts --related: %v", err)
	}
	if !strings.Contains(out, "Related to intro (1)") || !strings.Contains(out, "Go on the Web") {
		t.Errorf("related listing wrong:\n%s", out)
	}

	if _, err := run(t, cfgPath, "posts", "--related", "missing"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestThemeCommand(t *testing.T) {
	cfgPath, _ := setup(t)

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"theme"}, "☀️ dark"},
		{[]string{"theme", "toggle"}, "🌙 light"},
		{[]string{"theme"}, "🌙 light"},
		{[]string{"theme", "toggle"}, "☀️ dark"},
	}
	for _, s := range steps {
		out, err := run(t, cfgPath, s.args...)
		if err != nil {
			t.Fatalf("%v: %v", s.args, err)
		}
		if strings.TrimSpace(out) != s.want {
			t.Fatalf("%v = %q, want %q", s.args, out, s.want)
		}
	}
}

func TestBuildCommandUsesStoredTheme(t *testing.T) {
	cfgPath, dir := setup(t)
	if _, err := run(t, cfgPath, "theme", "toggle"); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, cfgPath, "build")
	if err != nil {
		t.Fatalf("build: %v\n%s", err, out)
	}
	index, err := os.ReadFile(filepath.Join(dir, "dist", "index.html"))
	if err != nil {
		t.Fatalf("index not written: %v", err)
	}
	if !strings.Contains(string(index), `data-theme="light"`) {
		t.Error("index should start in the stored light theme")
	}
	if _, err := os.Stat(filepath.Join(dir, "dist", "tags", "terraform", "index.html")); err != nil {
		t.Errorf("tag page missing: %v", err)
	}
}

func TestSelectPostsRecent(t *testing.T) {
	posts, err := catalog.Parse([]byte(testPosts))
	if err != nil {
		t.Fatal(err)
	}
	cat, err := catalog.New(posts)
	if err != nil {
		t.Fatal(err)
	}
	_, got, err := selectPosts(cat, postsFlags{recent: 2, recentSet: true, limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "web" || got[1].ID != "infra" {
		t.Errorf("recent = %+v", got)
	}
	if _, _, err := selectPosts(cat, postsFlags{related: "intro", limit: -1}); !errors.Is(err, catalog.ErrInvalidArgument) {
		t.Errorf("negative limit: err = %v", err)
	}
	_, got, err = selectPosts(cat, postsFlags{limit: 3})
	if err != nil || len(got) != 3 {
		t.Errorf("without recent: got %d posts, err = %v", len(got), err)
	}
}

func TestPostsCommandRejectsNegativeRecent(t *testing.T) {
	cfgPath, _ := setup(t)
	for _, tag := range []string{"", "Go"} {
		args := []string{"posts", "--recent", "-1"}
		if tag != "" {
			args = append(args, "--tag", tag)
		}
		out, err := run(t, cfgPath, args...)
		if !errors.Is(err, catalog.ErrInvalidArgument) {
			t.Errorf("%v: err = %v, out = %s", args, err, out)
		}
	}
}
