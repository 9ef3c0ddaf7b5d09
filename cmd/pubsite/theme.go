package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/pubsite"
	"github.com/eringen/pubsite/theme"
)

func (c *cli) newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the theme used by static builds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := pubsite.OpenSettings(c.cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			th, err := pubsite.StoredTheme(store)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", th.Icon(), th)
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between the dark and light theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := pubsite.OpenSettings(c.cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			th, err := theme.NewState(store).Toggle()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", th.Icon(), th)
			return nil
		},
	})
	return cmd
}
