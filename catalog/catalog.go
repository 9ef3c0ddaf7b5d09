package catalog

import (
	"fmt"
	"sort"
	"time"
)

// Catalog is an immutable, date-ordered collection of posts.
type Catalog struct {
	posts []Post
	byID  map[string]int
}

type sortEntry struct {
	post  Post
	at    time.Time
	valid bool
}

// New copies posts, orders them newest first by effective time and marks the
// first one as featured. Posts with unparseable dates sort last in their
// original order; they are reported in a DataError but do not stop
// construction, so the returned catalog is always usable.
func New(posts []Post) (*Catalog, error) {
	var derr DataError

	entries := make([]sortEntry, len(posts))
	for i, p := range posts {
		at, field, err := EffectiveTime(p)
		if err != nil {
			raw := p.Date
			if field == "timestamp" {
				raw = p.Timestamp
			}
			derr.add(DateError{ID: p.ID, Field: field, Value: raw})
		}
		entries[i] = sortEntry{post: p.clone(), at: at, valid: err == nil}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.valid != b.valid {
			return a.valid
		}
		if !a.valid {
			return false
		}
		return a.at.After(b.at)
	})

	c := &Catalog{
		posts: make([]Post, len(entries)),
		byID:  make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		e.post.Featured = i == 0
		c.posts[i] = e.post
		if _, dup := c.byID[e.post.ID]; !dup {
			c.byID[e.post.ID] = i
		}
	}

	if derr.HasAny() {
		return c, derr
	}
	return c, nil
}

// Len returns the number of posts.
func (c *Catalog) Len() int {
	return len(c.posts)
}

// All returns every post in catalog order.
func (c *Catalog) All() []Post {
	return clonePosts(c.posts)
}

// Featured returns the most recent post.
func (c *Catalog) Featured() (Post, bool) {
	if len(c.posts) == 0 {
		return Post{}, false
	}
	return c.posts[0].clone(), true
}

// ByTag returns the posts carrying tag, in catalog order.
func (c *Catalog) ByTag(tag string) []Post {
	var out []Post
	for _, p := range c.posts {
		if p.HasTag(tag) {
			out = append(out, p.clone())
		}
	}
	return out
}

// ByID looks a post up by id.
func (c *Catalog) ByID(id string) (Post, error) {
	i, ok := c.byID[id]
	if !ok {
		return Post{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c.posts[i].clone(), nil
}

// Recent returns the first n posts in catalog order.
func (c *Catalog) Recent(n int) ([]Post, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: recent count %d is negative", ErrInvalidArgument, n)
	}
	if n > len(c.posts) {
		n = len(c.posts)
	}
	return clonePosts(c.posts[:n]), nil
}

// UniqueTags returns every tag used in the catalog, ordered by first
// appearance.
func (c *Catalog) UniqueTags() []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, p := range c.posts {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}

// Relevance counts the distinct tags a and b have in common.
func Relevance(a, b Post) int {
	set := make(map[string]struct{}, len(a.Tags))
	for _, t := range a.Tags {
		set[t] = struct{}{}
	}
	n := 0
	for _, t := range b.Tags {
		if _, ok := set[t]; ok {
			n++
			delete(set, t)
		}
	}
	return n
}

// Related returns up to limit posts sharing tags with the post id, most
// shared tags first. Ties keep catalog order and posts sharing nothing are
// left out.
func (c *Catalog) Related(id string, limit int) ([]Post, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: related limit %d is negative", ErrInvalidArgument, limit)
	}
	target, err := c.ByID(id)
	if err != nil {
		return nil, err
	}

	type scored struct {
		post      Post
		relevance int
	}
	var candidates []scored
	for _, p := range c.posts {
		if p.ID == target.ID {
			continue
		}
		if r := Relevance(target, p); r > 0 {
			candidates = append(candidates, scored{post: p, relevance: r})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].relevance > candidates[j].relevance
	})

	if limit < len(candidates) {
		candidates = candidates[:limit]
	}
	out := make([]Post, len(candidates))
	for i, s := range candidates {
		out[i] = s.post.clone()
	}
	return out, nil
}
