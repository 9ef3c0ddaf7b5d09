package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/pubsite/scaffold"
)

func (c *cli) newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "new <title> <slug> [tags] [excerpt]",
		Short:   "Create a post file and print its posts.yaml entry",
		Example: `  pubsite new "Docker Best Practices" docker-best-practices "Docker,DevOps" "Tips for better Docker workflows"`,
		Args:    cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNew(cmd, args, time.Now())
		},
	}
}

func (c *cli) runNew(cmd *cobra.Command, args []string, now time.Time) error {
	out := cmd.OutOrStdout()
	p := scaffold.Params{
		Title:    args[0],
		Slug:     args[1],
		SiteName: c.cfg.Name,
	}
	if len(args) > 2 {
		p.Tags = scaffold.ParseTags(args[2])
	}
	if len(args) > 3 {
		p.Excerpt = args[3]
	}

	res, err := scaffold.NewPost(c.cfg.PostsDir, p, now)
	if err != nil {
		if errors.Is(err, scaffold.ErrExists) {
			return fmt.Errorf("%w; choose another slug or remove the file", err)
		}
		return err
	}

	fmt.Fprintf(out, "Created: %s\n", res.Path)
	fmt.Fprintf(out, "\nAdd this to %s under posts:\n\n%s", c.cfg.PostsFile, res.Entry)
	fmt.Fprintf(out, "\nNext steps:\n")
	fmt.Fprintf(out, "  1. Edit %s with your content\n", res.Path)
	fmt.Fprintf(out, "  2. Add the entry above to %s\n", c.cfg.PostsFile)
	fmt.Fprintf(out, "  3. Commit and push your changes\n")
	return nil
}
