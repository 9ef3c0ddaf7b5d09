package views

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/pubsite/catalog"
	"github.com/eringen/pubsite/theme"
)

// Container names a mount point in a page.
type Container string

const (
	MainContent  Container = "main-content"
	RecentPosts  Container = "recent-posts"
	Tags         Container = "tags"
	ArticleBody  Container = "article"
	RelatedPosts Container = "related-posts"
)

// Page is a document shell with named containers. Fragments are mounted
// into containers; a container left empty renders as an empty element.
type Page struct {
	Site      SiteConfig
	Meta      PageMeta
	Theme     theme.Theme
	CSRFToken string
	Links     Links
	JSONLD    string

	containers []Container
	slots      map[Container]templ.Component
}

// NewPage returns a page declaring the given containers in render order.
func NewPage(site SiteConfig, meta PageMeta, th theme.Theme, containers ...Container) *Page {
	return &Page{
		Site:       site,
		Meta:       meta,
		Theme:      th,
		containers: containers,
		slots:      make(map[Container]templ.Component),
	}
}

// Mount places c into the target container. A target the page does not
// declare is ignored and Mount reports false.
func (p *Page) Mount(target Container, c templ.Component) bool {
	if !p.Has(target) {
		return false
	}
	p.slots[target] = c
	return true
}

// Has reports whether the page declares target.
func (p *Page) Has(target Container) bool {
	for _, name := range p.containers {
		if name == target {
			return true
		}
	}
	return false
}

// Render implements templ.Component.
func (p *Page) Render(ctx context.Context, w io.Writer) error {
	th := p.Theme
	if _, ok := theme.Parse(string(th)); !ok {
		th = theme.Default
	}
	title := p.Meta.Title
	if title == "" {
		title = p.Site.Name
	} else if p.Site.Name != "" {
		title += " - " + p.Site.Name
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html lang="en" data-theme="` + esc(string(th)) + `"><head>`)
	b.WriteString(`<meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0">`)
	b.WriteString(`<title>` + esc(title) + `</title>`)
	if p.Meta.Description != "" {
		b.WriteString(`<meta name="description" content="` + esc(p.Meta.Description) + `">`)
		b.WriteString(`<meta property="og:description" content="` + esc(p.Meta.Description) + `">`)
	}
	b.WriteString(`<meta property="og:title" content="` + esc(title) + `">`)
	if p.Meta.URL != "" {
		b.WriteString(`<link rel="canonical" href="` + esc(p.Meta.URL) + `">`)
		b.WriteString(`<meta property="og:url" content="` + esc(p.Meta.URL) + `">`)
	}
	if p.Meta.OGType != "" {
		b.WriteString(`<meta property="og:type" content="` + esc(p.Meta.OGType) + `">`)
	}
	b.WriteString(`<link rel="stylesheet" href="` + esc(p.Links.Asset("css/styles.css")) + `">`)
	b.WriteString(`<link rel="alternate" type="application/rss+xml" href="` + esc(p.Links.Base+"/feed.xml") + `">`)
	b.WriteString(`<script src="` + esc(p.Links.Asset("theme.js")) + `" defer></script>`)
	if p.JSONLD != "" {
		// JSON-LD comes from json.Marshal, which escapes <, > and &.
		b.WriteString(`<script type="application/ld+json">` + p.JSONLD + `</script>`)
	}
	b.WriteString(`</head><body><header><nav class="container">`)
	b.WriteString(`<a href="` + esc(p.Links.Home()) + `" class="logo">` + esc(p.Site.Name) + `</a><div class="nav-right">`)
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if err := ThemeToggle(th, p.CSRFToken, p.Links.ToggleURL).Render(ctx, w); err != nil {
		return err
	}

	b.Reset()
	b.WriteString(`</div></nav></header><main class="container blog-container">`)
	for _, name := range p.containers {
		tag := "div"
		if name == RecentPosts {
			tag = "ul"
		}
		if _, err := io.WriteString(w, b.String()+`<`+tag+` class="`+string(name)+`">`); err != nil {
			return err
		}
		b.Reset()
		if c := p.slots[name]; c != nil {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		b.WriteString(`</` + tag + `>`)
	}
	b.WriteString(`</main><footer><div class="container"><p>&copy; `)
	b.WriteString(time.Now().Format("2006"))
	b.WriteString(` ` + esc(p.Site.Name) + `</p></div></footer></body></html>`)
	_, err := io.WriteString(w, b.String())
	return err
}

// ThemeToggle renders the theme switch. With an action URL it is a form
// posting back to the server; without one it is a bare button for static
// pages.
func ThemeToggle(th theme.Theme, csrfToken, action string) templ.Component {
	return fragment(func(b *strings.Builder) {
		button := `<button class="theme-toggle" id="theme-toggle" type="submit" aria-label="Toggle theme" data-theme="` + esc(string(th)) + `">` +
			`<span class="theme-icon">` + esc(th.Icon()) + `</span></button>`
		if action == "" {
			b.WriteString(button)
			return
		}
		b.WriteString(`<form method="post" action="` + esc(action) + `" hx-post="` + esc(action) + `" hx-swap="outerHTML" class="theme-toggle-form">`)
		if csrfToken != "" {
			b.WriteString(`<input type="hidden" name="_csrf" value="` + esc(csrfToken) + `">`)
		}
		b.WriteString(button)
		b.WriteString(`</form>`)
	})
}

// Home renders the blog index: cards, recent posts and the tag cloud.
func Home(d HomeData) templ.Component {
	p := NewPage(d.Site, d.Meta, d.Theme, MainContent, RecentPosts, Tags)
	p.CSRFToken = d.CSRFToken
	p.Links = d.Links
	p.JSONLD = WebsiteJsonLD(d.Site)
	p.Mount(MainContent, PostList(d.Posts, d.Links))
	p.Mount(RecentPosts, RecentList(d.Recent, d.Links))
	p.Mount(Tags, TagCloud(d.Tags, d.ActiveTag, d.Links))
	return p
}

// Article renders a single post with its related posts.
func Article(d ArticleData) templ.Component {
	p := NewPage(d.Site, d.Meta, d.Theme, ArticleBody, RelatedPosts)
	p.CSRFToken = d.CSRFToken
	p.Links = d.Links
	p.JSONLD = BlogPostingJsonLD(d.Site, d.Post)
	p.Mount(ArticleBody, articleBody(d))
	p.Mount(RelatedPosts, RelatedList(d.Related, d.Links))
	return p
}

func articleBody(d ArticleData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<article class="article-container"><a href="` + esc(d.Links.Home()) + `" class="back-link">← Back to blog</a>`)
		b.WriteString(`<header class="article-header"><div class="article-meta"><span>` + esc(catalog.FormatDate(d.Post)) + `</span>`)
		for _, t := range d.Post.Tags {
			b.WriteString(`<a class="article-tag" href="` + esc(d.Links.Tag(t)) + `">` + esc(t) + `</a>`)
		}
		b.WriteString(`</div><h1 class="article-title">` + esc(d.Post.Title) + `</h1>`)
		if d.Subtitle != "" {
			b.WriteString(`<p class="article-subtitle">` + esc(d.Subtitle) + `</p>`)
		}
		b.WriteString(`</header><div class="article-content">`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if d.Body != nil {
			if err := d.Body.Render(ctx, w); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, `<p>`+esc(d.Post.Excerpt)+`</p>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div></article>`)
		return err
	})
}

// NotFound renders the 404 page.
func NotFound(site SiteConfig, l Links) templ.Component {
	p := NewPage(site, PageMeta{Title: "Not found"}, theme.Default, MainContent)
	p.Links = l
	p.Mount(MainContent, fragment(func(b *strings.Builder) {
		b.WriteString(`<h1>Page not found</h1><p><a href="` + esc(l.Home()) + `">Back to the blog</a></p>`)
	}))
	return p
}

// ServerError renders the 500 page.
func ServerError(site SiteConfig, l Links) templ.Component {
	p := NewPage(site, PageMeta{Title: "Error"}, theme.Default, MainContent)
	p.Links = l
	p.Mount(MainContent, fragment(func(b *strings.Builder) {
		b.WriteString(`<h1>Something went wrong</h1><p>Please try again later.</p>`)
	}))
	return p
}
