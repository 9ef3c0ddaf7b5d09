// Package catalog holds the blog's post metadata and answers queries over it.
//
// A Catalog is built once from a static list of posts, sorted newest first,
// and is read-only afterwards, so it can be shared between goroutines.
package catalog

import "strings"

// Stat is a small labelled chip shown under a post excerpt.
type Stat struct {
	Label string `yaml:"label" json:"label"`
	Icon  string `yaml:"icon" json:"icon"`
}

// Post is one blog entry's metadata as written in posts.yaml.
type Post struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Date        string   `yaml:"date" json:"date"`                               // ISO 8601 calendar date
	Timestamp   string   `yaml:"timestamp,omitempty" json:"timestamp,omitempty"` // preferred over Date for ordering
	Tags        []string `yaml:"tags" json:"tags"`
	Excerpt     string   `yaml:"excerpt" json:"excerpt"`
	Stats       []Stat   `yaml:"stats,omitempty" json:"stats,omitempty"`
	CodeSnippet string   `yaml:"codeSnippet,omitempty" json:"codeSnippet,omitempty"` // raw text, escape before display

	// Featured is derived by New and never read from posts.yaml.
	Featured bool `yaml:"-" json:"featured"`
}

// HasTag reports whether tag is one of the post's tags.
func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (p Post) clone() Post {
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	if p.Stats != nil {
		p.Stats = append([]Stat(nil), p.Stats...)
	}
	return p
}

func clonePosts(posts []Post) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		out[i] = p.clone()
	}
	return out
}

// Slugify converts a title or tag to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
