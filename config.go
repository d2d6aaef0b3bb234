package blogkit

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/eringen/blogkit/siteurl"
)

// ErrInvalidConfig is returned when a SiteConfig cannot be used.
var ErrInvalidConfig = errors.New("blogkit: invalid config")

// SiteConfig holds all configuration for a blogkit site.
type SiteConfig struct {
	Name        string       // SITE_NAME (default "Blog")
	Site        string       // SITE_URL, canonical origin (default "https://kirils.github.io")
	Base        siteurl.Base // SITE_BASE, deploy base path ("/" when unset)
	Description string       // SITE_DESCRIPTION, used by the RSS channel

	ContentDir string // CONTENT_DIR (default "src/content")
	OutDir     string // OUT_DIR (default "dist")
	Output     string // build output mode; only "static" is supported

	PostCacheTTL time.Duration // Post cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.Site == "" {
		c.Site = "https://kirils.github.io"
	}
	if c.Base == "" {
		c.Base = "/"
	}
	if c.ContentDir == "" {
		c.ContentDir = "src/content"
	}
	if c.OutDir == "" {
		c.OutDir = "dist"
	}
	if c.Output == "" {
		c.Output = "static"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// Validate reports whether the config can drive a build.
func (c SiteConfig) Validate() error {
	u, err := url.Parse(c.Site)
	if err != nil {
		return fmt.Errorf("%w: site %q: %v", ErrInvalidConfig, c.Site, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: site %q must be an absolute http(s) URL", ErrInvalidConfig, c.Site)
	}
	if c.Output != "static" {
		return fmt.Errorf("%w: output %q is not supported", ErrInvalidConfig, c.Output)
	}
	return nil
}

// LoadConfig reads the site configuration from the environment after
// loading envFiles (default ".env"). Missing env files are skipped and
// variables already set in the process environment win. SITE_BASE is
// resolved once here; an unset value means a root deployment.
func LoadConfig(envFiles ...string) (SiteConfig, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return SiteConfig{}, fmt.Errorf("blogkit: load %s: %w", f, err)
		}
	}
	cfg := SiteConfig{
		Name:        os.Getenv("SITE_NAME"),
		Site:        os.Getenv("SITE_URL"),
		Base:        siteurl.NormalizeBase(os.Getenv("SITE_BASE")),
		Description: os.Getenv("SITE_DESCRIPTION"),
		ContentDir:  os.Getenv("CONTENT_DIR"),
		OutDir:      os.Getenv("OUT_DIR"),
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return SiteConfig{}, err
	}
	return cfg, nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
