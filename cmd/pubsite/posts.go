package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eringen/pubsite/catalog"
)

type postsFlags struct {
	tag       string
	recent    int
	recentSet bool
	related   string
	limit     int
}

func (c *cli) newPostsCmd() *cobra.Command {
	var f postsFlags
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List posts from the posts file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.loadCatalog(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				f.limit = c.cfg.RelatedLimit
			}
			f.recentSet = cmd.Flags().Changed("recent")
			heading, posts, err := selectPosts(cat, f)
			if err != nil {
				return err
			}
			renderPosts(cmd.OutOrStdout(), heading, posts)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.tag, "tag", "", "only posts with this tag (exact match)")
	cmd.Flags().IntVar(&f.recent, "recent", 0, "only the N newest posts")
	cmd.Flags().StringVar(&f.related, "related", "", "posts sharing tags with this post id")
	cmd.Flags().IntVar(&f.limit, "limit", 3, "maximum related posts")
	return cmd
}

// loadCatalog reads the posts file. Unparseable dates are reported on warn
// and do not stop the listing.
func (c *cli) loadCatalog(warn io.Writer) (*catalog.Catalog, error) {
	posts, err := catalog.LoadFile(c.cfg.PostsFile)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.New(posts)
	if err != nil {
		var derr catalog.DataError
		if !errors.As(err, &derr) {
			return nil, err
		}
		for _, item := range derr.Items {
			fmt.Fprintln(warn, warnStyle.Render("Warning: "+item.Error()))
		}
	}
	return cat, nil
}

// selectPosts applies the listing flags. recent only applies when recentSet
// is true, and a negative value is rejected.
func selectPosts(cat *catalog.Catalog, f postsFlags) (string, []catalog.Post, error) {
	if f.related != "" {
		posts, err := cat.Related(f.related, f.limit)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("Related to %s", f.related), posts, nil
	}

	heading := "All posts"
	posts := cat.All()
	if f.tag != "" {
		heading = fmt.Sprintf("Posts tagged %s", f.tag)
		posts = cat.ByTag(f.tag)
	}
	if f.recentSet {
		if f.recent < 0 {
			return "", nil, fmt.Errorf("recent %d: %w", f.recent, catalog.ErrInvalidArgument)
		}
		if f.tag == "" {
			recent, err := cat.Recent(f.recent)
			if err != nil {
				return "", nil, err
			}
			return fmt.Sprintf("%d most recent", len(recent)), recent, nil
		}
		if f.recent < len(posts) {
			posts = posts[:f.recent]
		}
	}
	return heading, posts, nil
}

func renderPosts(w io.Writer, heading string, posts []catalog.Post) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s (%d)", heading, len(posts))))
	if len(posts) == 0 {
		fmt.Fprintln(w, dateStyle.Render("  No posts."))
		return
	}
	for _, p := range posts {
		title := titleStyle.Render(p.Title)
		if p.Featured {
			title = featuredStyle.Render("★ " + p.Title)
		}
		fmt.Fprintf(w, "  %s  %s %s\n", dateStyle.Render(catalog.FormatDate(p)), title, idStyle.Render("("+p.ID+")"))
		if len(p.Tags) > 0 {
			fmt.Fprintf(w, "      %s\n", tagStyle.Render(strings.Join(p.Tags, " · ")))
		}
	}
}
