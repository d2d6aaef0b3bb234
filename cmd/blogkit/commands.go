package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/eringen/blogkit"
	"github.com/eringen/blogkit/scaffold"
)

// cli holds state shared by every subcommand.
type cli struct {
	envFiles []string
	verbose  bool

	log  zerolog.Logger
	site *blogkit.Site
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "blogkit",
		Short:         "Validate blog content and build site indexes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringSliceVar(&c.envFiles, "env-file", []string{".env"}, "env files to load before reading SITE_* variables")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.checkCmd(),
		c.buildCmd(),
		c.urlCmd(),
		c.newCmd(),
		c.watchCmd(),
		versionCmd(),
	)
	return root
}

func (c *cli) setup(stderr io.Writer) error {
	level, err := zerolog.ParseLevel(blogkit.EnvOr("BLOGKIT_LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	if c.verbose {
		level = zerolog.DebugLevel
	}
	c.log = zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	cfg, err := blogkit.LoadConfig(c.envFiles...)
	if err != nil {
		c.log.Error().Err(err).Msg("invalid configuration")
		return err
	}
	c.site = blogkit.New(cfg, blogkit.WithLogger(c.log))
	c.log.Debug().
		Str("site", cfg.Site).
		Str("base", cfg.Base.String()).
		Str("content", cfg.ContentDir).
		Msg("configuration loaded")
	return nil
}

func (c *cli) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate every blog post against the front-matter schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.site.Check()
			if err != nil {
				c.logEntryErrors(err)
				return err
			}
			c.log.Info().Int("entries", n).Msg("all entries valid")
			return nil
		},
	}
}

func (c *cli) logEntryErrors(err error) {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		c.log.Error().Err(err).Msg("content check failed")
		return
	}
	for _, e := range merr.Errors {
		c.log.Error().Err(e).Msg("invalid entry")
	}
	c.log.Error().Int("failures", len(merr.Errors)).Msg("content check failed")
}

func (c *cli) buildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Validate content and write sitemap.xml and rss.xml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.site.Build(cmd.Context())
			if err != nil {
				c.log.Error().Err(err).Msg("build failed")
				return err
			}
			for _, a := range res.Artifacts {
				fmt.Fprintln(cmd.OutOrStdout(), a)
			}
			return nil
		},
	}
}

func (c *cli) urlCmd() *cobra.Command {
	var posts bool
	cmd := &cobra.Command{
		Use:   "url [path...]",
		Short: "Print site-relative URLs under the configured base path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if posts {
				return c.printPostURLs(cmd, args)
			}
			if len(args) == 0 {
				args = []string{""}
			}
			for _, p := range args {
				fmt.Fprintln(cmd.OutOrStdout(), c.site.URL(p))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&posts, "post", false, "treat arguments as slugs of published posts")
	return cmd
}

func (c *cli) printPostURLs(cmd *cobra.Command, slugs []string) error {
	if len(slugs) == 0 {
		return errors.New("--post needs at least one slug")
	}
	for _, slug := range slugs {
		e, err := c.site.Cache.GetPost(cmd.Context(), slug)
		if err != nil {
			c.log.Error().Err(err).Str("slug", slug).Msg("cannot resolve post")
			return fmt.Errorf("post %q: %w", slug, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), c.site.PostURL(e))
	}
	return nil
}

func (c *cli) newCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <title>",
		Short: "Create a draft blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := filepath.Join(c.site.Config.ContentDir, filepath.FromSlash(c.site.Collection.Dir))
			path, err := scaffold.NewPost(dir, args[0], time.Now())
			if err != nil {
				c.log.Error().Err(err).Msg("cannot create post")
				return err
			}
			c.log.Info().Str("path", path).Msg("created draft")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func (c *cli) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-validate content whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return blogkit.NewWatcher(c.site).Run(cmd.Context())
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the blogkit version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blogkit %s\n", version)
		},
	}
}
