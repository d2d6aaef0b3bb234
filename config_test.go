package blogkit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/blogkit/siteurl"
)

var configEnv = []string{"SITE_NAME", "SITE_URL", "SITE_BASE", "SITE_DESCRIPTION", "CONTENT_DIR", "OUT_DIR"}

// unsetConfigEnv clears the config variables for the test and restores
// them afterwards.
func unsetConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnv {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	unsetConfigEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "Blog", cfg.Name)
	assert.Equal(t, "https://kirils.github.io", cfg.Site)
	assert.Equal(t, siteurl.Base("/"), cfg.Base, "unset SITE_BASE means root deployment")
	assert.Equal(t, "src/content", cfg.ContentDir)
	assert.Equal(t, "dist", cfg.OutDir)
	assert.Equal(t, "static", cfg.Output)
	assert.Equal(t, 5*time.Minute, cfg.PostCacheTTL)
}

func TestLoadConfigFromEnv(t *testing.T) {
	unsetConfigEnv(t)
	t.Setenv("SITE_BASE", "test-repo")
	t.Setenv("SITE_URL", "https://example.com")
	t.Setenv("SITE_NAME", "Notes")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, siteurl.Base("/test-repo/"), cfg.Base)
	assert.Equal(t, "https://example.com", cfg.Site)
	assert.Equal(t, "Notes", cfg.Name)
	assert.Equal(t, "/test-repo/blog", cfg.Base.URL("blog"))
}

func TestLoadConfigEnvFile(t *testing.T) {
	unsetConfigEnv(t)
	t.Setenv("SITE_NAME", "From Process")
	os.Unsetenv("SITE_BASE")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SITE_BASE=/docs\nSITE_NAME=From File\nOUT_DIR=public\n"), 0o644))

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)
	assert.Equal(t, siteurl.Base("/docs/"), cfg.Base)
	assert.Equal(t, "From Process", cfg.Name, "process environment wins over the env file")
	assert.Equal(t, "public", cfg.OutDir)
}

func TestLoadConfigRejectsRelativeSite(t *testing.T) {
	unsetConfigEnv(t)
	t.Setenv("SITE_URL", "kirils.github.io")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidateOutput(t *testing.T) {
	cfg := SiteConfig{Output: "server"}
	cfg.setDefaults()
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestEnvOr(t *testing.T) {
	t.Setenv("BLOGKIT_TEST_VALUE", "set")
	assert.Equal(t, "set", EnvOr("BLOGKIT_TEST_VALUE", "fallback"))
	t.Setenv("BLOGKIT_TEST_VALUE", "")
	assert.Equal(t, "fallback", EnvOr("BLOGKIT_TEST_VALUE", "fallback"))
}
