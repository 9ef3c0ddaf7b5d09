package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/pubsite"
)

func (c *cli) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the site as static HTML",
		Long: `build renders the index, one page per tag, every post, the RSS feed and
the sitemap into the output directory, and copies the static directory to
public/ inside it. Pages start in the theme last chosen with "pubsite theme".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			store, err := pubsite.OpenSettings(c.cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			th, err := pubsite.StoredTheme(store)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v, using %s theme\n", err, th)
			}

			app := pubsite.New(c.cfg)
			fmt.Fprintf(out, "Building %s into %s\n", c.cfg.PostsFile, c.cfg.OutputDir)
			rep, err := app.Build(cmd.Context(), th, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nDone: %d pages rendered, %d files copied.\n", rep.Pages, rep.Copied)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "output directory (overrides config)")
	cmd.Flags().String("base-path", "", "link prefix when the site is not hosted at the root")
	c.bindFlag(cmd, "output_dir", "output")
	c.bindFlag(cmd, "base_path", "base-path")
	return cmd
}

// bindFlag lets a flag override the config key when it is set.
func (c *cli) bindFlag(cmd *cobra.Command, key, flag string) {
	if err := c.v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(err)
	}
}
