package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/pubsite"
)

// cli holds state shared by every subcommand.
type cli struct {
	cfgFile string
	v       *viper.Viper
	cfg     pubsite.SiteConfig
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:   "pubsite",
		Short: "A small blog: serve it, build it, add posts",
		Long: `pubsite serves a blog whose post list lives in posts.yaml, builds it
into static HTML, and scaffolds new posts.

Configuration is read from ./pubsite.yaml (or --config), then from
PUBSITE_* environment variables and a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initializeConfig()
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ./pubsite.yaml)")

	root.AddCommand(
		c.newServeCmd(),
		c.newBuildCmd(),
		c.newNewCmd(),
		c.newPostsCmd(),
		c.newThemeCmd(),
		newVersionCmd(),
	)
	return root
}

func (c *cli) initializeConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	v := c.v
	// Every key needs a default so AutomaticEnv can override it.
	d := pubsite.Defaults(pubsite.SiteConfig{})
	v.SetDefault("name", d.Name)
	v.SetDefault("url", d.URL)
	v.SetDefault("description", "")
	v.SetDefault("author", "")
	v.SetDefault("addr", d.Addr)
	v.SetDefault("posts_file", d.PostsFile)
	v.SetDefault("posts_dir", d.PostsDir)
	v.SetDefault("static_dir", d.StaticDir)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("base_path", "")
	v.SetDefault("settings_driver", d.SettingsDriver)
	v.SetDefault("settings_path", d.SettingsPath)
	v.SetDefault("session_secret", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("cache_ttl", d.CacheTTL.String())
	v.SetDefault("recent_count", d.RecentCount)
	v.SetDefault("related_limit", d.RelatedLimit)
	v.SetDefault("toggle_limit", d.ToggleLimit)

	if c.cfgFile != "" {
		v.SetConfigFile(c.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("pubsite")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PUBSITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
		if c.cfgFile != "" {
			return fmt.Errorf("config file %s not found: %w", c.cfgFile, err)
		}
	}

	var cfg pubsite.SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	c.cfg = pubsite.Defaults(cfg)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pubsite version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pubsite %s\n", version)
		},
	}
}
