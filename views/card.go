package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/pubsite/catalog"
)

// esc is the escaper generated templ code uses for text and attributes.
var esc = templ.EscapeString[string]

func fragment(build func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		build(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// PostCard renders one post as an <article> card. It reads nothing but its
// arguments.
func PostCard(p catalog.Post, l Links) templ.Component {
	return fragment(func(b *strings.Builder) {
		writeCard(b, p, l)
	})
}

func writeCard(b *strings.Builder, p catalog.Post, l Links) {
	href := esc(l.Post(p.ID))
	if p.Featured {
		b.WriteString(`<article class="post featured-post" id="post-` + esc(p.ID) + `">`)
		b.WriteString(`<div class="featured-badge">Latest</div>`)
	} else {
		b.WriteString(`<article class="post" id="post-` + esc(p.ID) + `">`)
	}

	b.WriteString(`<div class="post-meta"><span class="post-date">`)
	b.WriteString(esc(catalog.FormatDate(p)))
	b.WriteString(`</span>`)
	for _, t := range p.Tags {
		b.WriteString(`<a class="post-tag" href="` + esc(l.Tag(t)) + `">` + esc(t) + `</a>`)
	}
	b.WriteString(`</div>`)

	b.WriteString(`<h2><a href="` + href + `">` + esc(p.Title) + `</a></h2>`)
	b.WriteString(`<p class="post-excerpt">` + esc(p.Excerpt) + `</p>`)

	if len(p.Stats) > 0 {
		b.WriteString(`<div class="post-stats">`)
		for _, s := range p.Stats {
			b.WriteString(`<span class="stat-item"><span>` + esc(s.Icon) + `</span><span>` + esc(s.Label) + `</span></span>`)
		}
		b.WriteString(`</div>`)
	}

	if p.CodeSnippet != "" {
		b.WriteString(`<div class="code-snippet"><pre><code>`)
		b.WriteString(esc(p.CodeSnippet))
		b.WriteString(`</code></pre></div>`)
	}

	b.WriteString(`<a href="` + href + `" class="read-more">Read full post →</a>`)
	b.WriteString(`</article>`)
}

// PostList renders cards for posts, or an empty-state paragraph.
func PostList(posts []catalog.Post, l Links) templ.Component {
	return fragment(func(b *strings.Builder) {
		if len(posts) == 0 {
			b.WriteString(`<p class="empty">No posts yet.</p>`)
			return
		}
		for _, p := range posts {
			writeCard(b, p, l)
		}
	})
}

// RecentList renders the sidebar's recent post links as <li> items.
func RecentList(posts []catalog.Post, l Links) templ.Component {
	return fragment(func(b *strings.Builder) {
		for _, p := range posts {
			b.WriteString(`<li><a href="` + esc(l.Post(p.ID)) + `">` + esc(p.Title) + `</a></li>`)
		}
	})
}

// TagCloud renders the "All" chip followed by one chip per tag. The chip for
// active (or "All" when active is empty) is marked.
func TagCloud(tags []string, active string, l Links) templ.Component {
	return fragment(func(b *strings.Builder) {
		b.WriteString(`<a href="` + esc(l.Home()) + `" class="` + TagClass(active == "") + `">All</a>`)
		for _, t := range tags {
			b.WriteString(`<a href="` + esc(l.Tag(t)) + `" class="` + TagClass(t == active) + `" data-tag="` + esc(t) + `">` + esc(t) + `</a>`)
		}
	})
}

// RelatedList renders links to related posts.
func RelatedList(posts []catalog.Post, l Links) templ.Component {
	return fragment(func(b *strings.Builder) {
		if len(posts) == 0 {
			return
		}
		b.WriteString(`<h3>Related posts</h3><ul>`)
		for _, p := range posts {
			b.WriteString(`<li><a href="` + esc(l.Post(p.ID)) + `">` + esc(p.Title) + `</a> <span class="post-date">` + esc(catalog.FormatDate(p)) + `</span></li>`)
		}
		b.WriteString(`</ul>`)
	})
}
