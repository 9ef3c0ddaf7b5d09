// Package markdown renders post bodies written in Markdown as templ components.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// FrontMatter is the optional YAML header of a post body.
type FrontMatter struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
}

// Document is a rendered post body.
type Document struct {
	Meta FrontMatter
	HTML []byte
}

// Renderer converts Markdown to HTML. Raw HTML in the source is dropped.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer with GitHub-flavoured extensions.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	return &Renderer{md: md}
}

// Parse splits off the front matter, if any, and renders the rest.
func (r *Renderer) Parse(src []byte) (Document, error) {
	var doc Document
	body, err := frontmatter.Parse(bytes.NewReader(src), &doc.Meta)
	if err != nil {
		return Document{}, fmt.Errorf("front matter: %w", err)
	}
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return Document{}, fmt.Errorf("render markdown: %w", err)
	}
	doc.HTML = buf.Bytes()
	return doc, nil
}

// Component wraps the rendered HTML for use inside a page.
func (d Document) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write(d.HTML)
		return err
	})
}
