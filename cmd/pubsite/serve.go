package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eringen/pubsite"
)

func (c *cli) newServeCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []pubsite.Option
			if watch {
				opts = append(opts, pubsite.WithWatch())
			}
			app := pubsite.New(c.cfg, opts...)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.Start(ctx)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "reload posts when the posts file changes")
	cmd.Flags().String("addr", "", "listen address (overrides config)")
	c.bindFlag(cmd, "addr", "addr")
	return cmd
}
