package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func render(t *testing.T, src string) string {
	t.Helper()
	doc, err := New().Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return string(doc.HTML)
}

func TestRenderHeadingsWithIDs(t *testing.T) {
	got := render(t, "## Section Header\n\ntext")
	if !strings.Contains(got, `<h2 id="section-header">Section Header</h2>`) {
		t.Errorf("heading = %q", got)
	}
}

func TestRenderCodeBlockEscapes(t *testing.T) {
	got := render(t, "```sh\necho \"<b>\"\n```")
	if !strings.Contains(got, `<code class="language-sh">`) {
		t.Errorf("language class missing: %q", got)
	}
	if strings.Contains(got, "<b>") {
		t.Errorf("code content not escaped: %q", got)
	}
}

func TestRawHTMLDropped(t *testing.T) {
	got := render(t, "hello\n\n<script>alert(1)</script>\n")
	if strings.Contains(got, "<script>") {
		t.Errorf("raw html should be omitted: %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	got := render(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")
	if !strings.Contains(got, "<table>") || !strings.Contains(got, "<td>1</td>") {
		t.Errorf("table = %q", got)
	}
}

func TestFrontMatter(t *testing.T) {
	src := "---\ntitle: Docker Tips\nsubtitle: Smaller images\n---\n\nBody text.\n"
	doc, err := New().Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Meta.Subtitle != "Smaller images" || doc.Meta.Title != "Docker Tips" {
		t.Errorf("Meta = %+v", doc.Meta)
	}
	html := string(doc.HTML)
	if strings.Contains(html, "subtitle") {
		t.Errorf("front matter leaked into body: %q", html)
	}
	if !strings.Contains(html, "<p>Body text.</p>") {
		t.Errorf("body = %q", html)
	}
}

func TestNoFrontMatter(t *testing.T) {
	doc, err := New().Parse([]byte("Just text."))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Meta.Subtitle != "" {
		t.Errorf("Meta = %+v", doc.Meta)
	}
	if !strings.Contains(string(doc.HTML), "<p>Just text.</p>") {
		t.Errorf("body = %q", doc.HTML)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	doc, err := New().Parse([]byte("**bold**"))
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.Component().Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "<strong>bold</strong>") {
		t.Errorf("got %q", buf.String())
	}
}
