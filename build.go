package pubsite

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/eringen/pubsite/theme"
	"github.com/eringen/pubsite/views"
)

// BuildReport summarises a static build.
type BuildReport struct {
	Pages  int // rendered HTML pages
	Copied int // post and static files copied verbatim
}

// Build writes the whole site to Config.OutputDir: the index, one index per
// tag, every post page, the feed, the sitemap, and the static directory under
// public/. th is the theme the pages are rendered with before theme.js
// applies the visitor's stored choice. Progress lines go to out.
//
// Existing files in the output directory are overwritten, others are left.
func (a *App) Build(ctx context.Context, th theme.Theme, out io.Writer) (BuildReport, error) {
	var rep BuildReport
	if out == nil {
		out = io.Discard
	}
	cat, err := a.Cache.Catalog()
	if err != nil {
		return rep, err
	}
	dst := a.Config.OutputDir
	links := views.Links{
		Base:       a.Config.BasePath,
		StaticTags: true,
		TagSlugs:   views.TagSlugs(cat.UniqueTags()),
	}

	page := func(rel string, render func(path string) error) error {
		path := filepath.Join(dst, filepath.FromSlash(rel))
		if err := render(path); err != nil {
			return err
		}
		rep.Pages++
		fmt.Fprintf(out, "  wrote %s\n", path)
		return nil
	}

	home, err := a.homeData(cat, "", links)
	if err != nil {
		return rep, err
	}
	home.Theme = th
	if err := page("index.html", func(p string) error { return RenderFile(ctx, p, a.Views.Home(home)) }); err != nil {
		return rep, err
	}

	for _, tag := range cat.UniqueTags() {
		slug := links.TagSlugs[tag]
		d, err := a.homeData(cat, tag, links)
		if err != nil {
			return rep, err
		}
		d.Theme = th
		if err := page("tags/"+slug+"/index.html", func(p string) error { return RenderFile(ctx, p, a.Views.Home(d)) }); err != nil {
			return rep, err
		}
	}

	for _, post := range cat.All() {
		if !safeID(post.ID) {
			fmt.Fprintf(out, "  skipped post %q: id is not a file name\n", post.ID)
			continue
		}
		body, err := a.loadPostBody(post.ID)
		if err != nil {
			return rep, err
		}
		target := filepath.Join(dst, "posts", post.ID+".html")
		if body.HTMLPath != "" {
			if err := copyFile(body.HTMLPath, target); err != nil {
				return rep, err
			}
			rep.Copied++
			fmt.Fprintf(out, "  copied %s\n", target)
			continue
		}
		related, err := cat.Related(post.ID, a.Config.RelatedLimit)
		if err != nil {
			return rep, err
		}
		d := a.articleData(post, body, related, links)
		d.Theme = th
		if err := page("posts/"+post.ID+".html", func(p string) error { return RenderFile(ctx, p, a.Views.Article(d)) }); err != nil {
			return rep, err
		}
	}

	if err := page("404.html", func(p string) error {
		return RenderFile(ctx, p, a.Views.NotFound(a.Config.viewConfig(), links))
	}); err != nil {
		return rep, err
	}

	feed, err := Feed(a.Config, cat.All())
	if err != nil {
		return rep, err
	}
	sitemap, err := Sitemap(a.Config, cat.All())
	if err != nil {
		return rep, err
	}
	for name, data := range map[string][]byte{
		"feed.xml":    feed,
		"sitemap.xml": sitemap,
		"robots.txt":  Robots(a.Config),
	} {
		if err := os.WriteFile(filepath.Join(dst, name), data, 0o644); err != nil {
			return rep, err
		}
	}

	public := filepath.Join(dst, "public")
	themeJS, err := EmbeddedAssets.ReadFile("embedded/theme.js")
	if err != nil {
		return rep, err
	}
	if err := os.MkdirAll(public, 0o755); err != nil {
		return rep, err
	}
	if err := os.WriteFile(filepath.Join(public, "theme.js"), themeJS, 0o644); err != nil {
		return rep, err
	}
	n, err := copyDir(a.Config.StaticDir, public)
	if err != nil {
		return rep, fmt.Errorf("copy static assets: %w", err)
	}
	rep.Copied += n
	return rep, nil
}

// copyDir copies every regular file under src into dst. A missing src is
// not an error.
func copyDir(src, dst string) (int, error) {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return 0, nil
	}
	n := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
