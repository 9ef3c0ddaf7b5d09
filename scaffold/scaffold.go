// Package scaffold creates new post files and the posts.yaml entry that
// registers them.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eringen/pubsite/catalog"
)

// Templates contains the post templates. Files use html/template syntax
// and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// DefaultExcerpt is written into the config entry when none is given.
const DefaultExcerpt = "Add your post excerpt here..."

var (
	ErrMissingArgument = errors.New("title and slug are required")
	ErrInvalidSlug     = errors.New("slug must be lowercase letters, digits and dashes")
	ErrExists          = errors.New("post file already exists")
)

var postTemplate = template.Must(template.ParseFS(Templates, "templates/post.html.tmpl"))

// Params describes the post to create.
type Params struct {
	Title    string
	Slug     string
	Tags     []string
	Excerpt  string
	SiteName string
}

// Result reports what NewPost wrote.
type Result struct {
	Path  string
	Entry string
}

// ParseTags splits a comma separated tag list, dropping empty items.
func ParseTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (p Params) validate() error {
	if strings.TrimSpace(p.Title) == "" || p.Slug == "" {
		return ErrMissingArgument
	}
	if catalog.Slugify(p.Slug) != p.Slug {
		return fmt.Errorf("%w: %q", ErrInvalidSlug, p.Slug)
	}
	return nil
}

type pageData struct {
	Params
	DisplayDate string
	Year        int
}

// NewPost writes {dir}/{slug}.html from the post template. An existing file
// is left untouched and ErrExists is returned.
func NewPost(dir string, p Params, now time.Time) (Result, error) {
	if err := p.validate(); err != nil {
		return Result{}, err
	}
	entry, err := ConfigEntry(p, now)
	if err != nil {
		return Result{}, err
	}

	now = now.UTC()
	var buf bytes.Buffer
	err = postTemplate.Execute(&buf, pageData{
		Params:      p,
		DisplayDate: now.Format("Jan 2, 2006"),
		Year:        now.Year(),
	})
	if err != nil {
		return Result{}, fmt.Errorf("execute template: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create posts dir: %w", err)
	}
	path := filepath.Join(dir, p.Slug+".html")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrExists, path)
		}
		return Result{}, fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return Result{}, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return Result{}, fmt.Errorf("close %s: %w", path, err)
	}
	return Result{Path: path, Entry: entry}, nil
}

// ConfigEntry returns the YAML list item to append under posts: in
// posts.yaml, indented to sit under that key.
func ConfigEntry(p Params, now time.Time) (string, error) {
	if err := p.validate(); err != nil {
		return "", err
	}
	now = now.UTC()
	excerpt := p.Excerpt
	if excerpt == "" {
		excerpt = DefaultExcerpt
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	post := catalog.Post{
		ID:        p.Slug,
		Title:     p.Title,
		Date:      now.Format(time.DateOnly),
		Timestamp: now.Format(time.RFC3339),
		Tags:      tags,
		Excerpt:   excerpt,
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode([]catalog.Post{post}); err != nil {
		return "", fmt.Errorf("encode entry: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode entry: %w", err)
	}

	var out strings.Builder
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		out.WriteString("  " + line + "\n")
	}
	return out.String(), nil
}
