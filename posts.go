package pubsite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/a-h/templ"

	"github.com/eringen/pubsite/catalog"
	"github.com/eringen/pubsite/views"
)

// postBody says where a post's page comes from. A hand-written
// posts/{id}.html is served as is; otherwise posts/{id}.md is rendered into
// the article layout; otherwise the article shows the excerpt.
type postBody struct {
	HTMLPath string
	Subtitle string
	Body     templ.Component // rendered markdown, nil when absent
}

func (a *App) loadPostBody(id string) (postBody, error) {
	if !safeID(id) {
		return postBody{}, nil
	}
	htmlPath := filepath.Join(a.Config.PostsDir, id+".html")
	if fileExists(htmlPath) {
		return postBody{HTMLPath: htmlPath}, nil
	}
	mdPath := filepath.Join(a.Config.PostsDir, id+".md")
	src, err := os.ReadFile(mdPath)
	if os.IsNotExist(err) {
		return postBody{}, nil
	}
	if err != nil {
		return postBody{}, fmt.Errorf("read %s: %w", mdPath, err)
	}
	doc, err := a.md.Parse(src)
	if err != nil {
		return postBody{}, fmt.Errorf("%s: %w", mdPath, err)
	}
	return postBody{Subtitle: doc.Meta.Subtitle, Body: doc.Component()}, nil
}

func (a *App) articleData(post catalog.Post, body postBody, related []catalog.Post, links views.Links) views.ArticleData {
	return views.ArticleData{
		Site: a.Config.viewConfig(),
		Meta: views.PageMeta{
			Title:       post.Title,
			Description: post.Excerpt,
			URL:         PostURL(a.Config.URL, post.ID),
			OGType:      "article",
		},
		Links:    links,
		Post:     post,
		Subtitle: body.Subtitle,
		Related:  related,
		Body:     body.Body,
	}
}

func (a *App) homeData(cat *catalog.Catalog, tag string, links views.Links) (views.HomeData, error) {
	posts := cat.All()
	if tag != "" {
		posts = cat.ByTag(tag)
	}
	recent, err := cat.Recent(a.Config.RecentCount)
	if err != nil {
		return views.HomeData{}, err
	}
	meta := views.PageMeta{
		Description: a.Config.Description,
		URL:         BuildURL(a.Config.URL),
		OGType:      "website",
	}
	if tag != "" {
		meta.Title = "Posts tagged " + tag
	}
	return views.HomeData{
		Site:      a.Config.viewConfig(),
		Meta:      meta,
		Links:     links,
		Posts:     posts,
		Recent:    recent,
		Tags:      cat.UniqueTags(),
		ActiveTag: tag,
	}, nil
}
