package views

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/pubsite/catalog"
	"github.com/eringen/pubsite/theme"
)

// SiteConfig holds the site-wide settings templates read.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// Links builds hrefs for the served site and for the static build.
// Base is a path prefix without a trailing slash ("" for the root).
type Links struct {
	Base       string
	StaticTags bool              // tag pages are /tags/{slug}/ instead of /?tag=
	TagSlugs   map[string]string // static tag directories, see TagSlugs
	ToggleURL  string
}

func (l Links) Home() string {
	return l.Base + "/"
}

func (l Links) Post(id string) string {
	return l.Base + "/posts/" + url.PathEscape(id) + ".html"
}

func (l Links) Tag(tag string) string {
	if l.StaticTags {
		slug, ok := l.TagSlugs[tag]
		if !ok {
			slug = catalog.Slugify(tag)
		}
		if slug == "" {
			return l.Home()
		}
		return l.Base + "/tags/" + slug + "/"
	}
	return l.Base + "/?tag=" + url.QueryEscape(tag)
}

// TagSlugs gives every tag a distinct directory name. A tag with no usable
// characters becomes "tag", and a name already taken gets -2, -3, ... appended.
func TagSlugs(tags []string) map[string]string {
	slugs := make(map[string]string, len(tags))
	used := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if _, ok := slugs[tag]; ok {
			continue
		}
		base := catalog.Slugify(tag)
		if base == "" {
			base = "tag"
		}
		slug := base
		for n := 2; used[slug]; n++ {
			slug = fmt.Sprintf("%s-%d", base, n)
		}
		used[slug] = true
		slugs[tag] = slug
	}
	return slugs
}

func (l Links) Asset(name string) string {
	return l.Base + "/public/" + strings.TrimPrefix(name, "/")
}

// HomeData is everything the home page renders.
type HomeData struct {
	Site      SiteConfig
	Meta      PageMeta
	Theme     theme.Theme
	CSRFToken string
	Links     Links

	Posts     []catalog.Post
	Recent    []catalog.Post
	Tags      []string
	ActiveTag string
}

// ArticleData is everything a post page renders. Body is nil when the post
// has no markdown source; the excerpt is shown instead.
type ArticleData struct {
	Site      SiteConfig
	Meta      PageMeta
	Theme     theme.Theme
	CSRFToken string
	Links     Links

	Post     catalog.Post
	Subtitle string
	Body     templ.Component
	Related  []catalog.Post
}
