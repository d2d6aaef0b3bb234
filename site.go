// Package blogkit is the Go side of a statically built blog. It loads the
// blog content collection against its front-matter schema, builds
// base-path-aware URLs and writes the sitemap and RSS indexes.
//
// Page rendering belongs to the site framework; blogkit supplies the
// validated posts and the URLs it links them under.
package blogkit

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/eringen/blogkit/content"
	"github.com/eringen/blogkit/siteurl"
)

// Site wires together the configuration, the blog collection and its cache.
type Site struct {
	Config     SiteConfig
	Collection *content.Collection
	Cache      *PostCache

	fsys   fs.FS
	onDisk bool // fsys is Config.ContentDir
	log    zerolog.Logger
}

// Option configures additional Site behavior.
type Option func(*Site)

// WithLogger sets the logger used for build and watch progress.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Site) {
		s.log = l
	}
}

// WithContentFS reads content from fsys instead of Config.ContentDir.
// Such a Site cannot be watched.
func WithContentFS(fsys fs.FS) Option {
	return func(s *Site) {
		s.fsys = fsys
	}
}

// New creates a Site for cfg.
func New(cfg SiteConfig, opts ...Option) *Site {
	cfg.setDefaults()

	s := &Site{
		Config:     cfg,
		Collection: content.BlogCollection(),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fsys == nil {
		s.fsys = os.DirFS(cfg.ContentDir)
		s.onDisk = true
	}
	s.Cache = NewPostCache(func(ctx context.Context) (content.Posts, error) {
		return s.Collection.Load(ctx, s.fsys)
	}, cfg.PostCacheTTL)
	return s
}

// Posts returns every entry of the blog collection through the cache.
func (s *Site) Posts(ctx context.Context) (content.Posts, error) {
	return s.Cache.Posts(ctx)
}

// URL returns p joined onto the configured base path.
func (s *Site) URL(p string) string {
	return s.Config.Base.URL(p)
}

// AbsoluteURL returns the canonical URL of p, including the site origin.
func (s *Site) AbsoluteURL(p string) string {
	return siteurl.Absolute(s.Config.Site, s.Config.Base, p)
}

// PostURL returns the site-relative URL of a blog entry.
func (s *Site) PostURL(e content.Entry) string {
	return s.URL(postPath(e))
}

func postPath(e content.Entry) string {
	return "blog/" + e.Slug
}

// Check validates every blog content file without stopping at the first
// failure. It returns the number of files checked.
func (s *Site) Check() (int, error) {
	n, err := s.Collection.Check(s.fsys)
	if err != nil {
		return n, fmt.Errorf("blogkit: check %s: %w", s.Collection.Name, err)
	}
	return n, nil
}

// BuildResult summarizes a Build.
type BuildResult struct {
	Posts     int
	Drafts    int
	Tags      []string
	Artifacts []string
}

// Build loads the collection, failing on the first invalid entry, and
// writes the sitemap and RSS feed for published posts into Config.OutDir.
// Nothing is written when validation fails.
func (s *Site) Build(ctx context.Context) (BuildResult, error) {
	if err := s.Config.Validate(); err != nil {
		return BuildResult{}, err
	}
	s.Cache.Invalidate()
	all, err := s.Posts(ctx)
	if err != nil {
		return BuildResult{}, fmt.Errorf("blogkit: load %s: %w", s.Collection.Name, err)
	}
	published, err := s.Cache.ListPosts(ctx, "")
	if err != nil {
		return BuildResult{}, fmt.Errorf("blogkit: load %s: %w", s.Collection.Name, err)
	}
	tags, err := s.Cache.ListTags(ctx)
	if err != nil {
		return BuildResult{}, fmt.Errorf("blogkit: load %s: %w", s.Collection.Name, err)
	}
	if len(all) == 0 {
		s.log.Warn().Str("collection", s.Collection.Name).Msg("collection has no entries")
	}

	if err := os.MkdirAll(s.Config.OutDir, 0o755); err != nil {
		return BuildResult{}, fmt.Errorf("blogkit: create out dir: %w", err)
	}
	res := BuildResult{Posts: len(published), Drafts: len(all) - len(published), Tags: tags}
	artifacts := []struct {
		name  string
		write func(f *os.File) error
	}{
		{"sitemap.xml", func(f *os.File) error { return s.WriteSitemap(f, published) }},
		{"rss.xml", func(f *os.File) error { return s.WriteRSS(f, published) }},
	}
	for _, a := range artifacts {
		out := filepath.Join(s.Config.OutDir, a.name)
		if err := writeFile(out, a.write); err != nil {
			return BuildResult{}, fmt.Errorf("blogkit: write %s: %w", a.name, err)
		}
		s.log.Debug().Str("out", out).Msg("wrote artifact")
		res.Artifacts = append(res.Artifacts, out)
	}
	s.log.Info().
		Int("entries", res.Posts).
		Int("drafts", res.Drafts).
		Int("tags", len(res.Tags)).
		Str("base", s.Config.Base.String()).
		Msg("build complete")
	return res, nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
