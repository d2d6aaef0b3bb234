// Package scaffold creates new content files from embedded templates.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eringen/blogkit/content"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// ErrExists is returned when the target file is already present.
var ErrExists = errors.New("scaffold: file already exists")

// postData holds the template variables passed to post.md.tmpl.
type postData struct {
	Title       string
	Description string
	PubDate     string
}

var postTemplate = template.Must(
	template.New("post.md.tmpl").
		Funcs(template.FuncMap{"yaml": yamlScalar}).
		ParseFS(Templates, "templates/post.md.tmpl"),
)

// NewPost writes a draft post titled title into dir and returns its path.
// The file name is the slugified title; an existing file is never
// overwritten.
func NewPost(dir, title string, now time.Time) (string, error) {
	title = strings.Join(strings.Fields(title), " ")
	slug := content.Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("scaffold: title %q has no usable characters for a slug", title)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	out := filepath.Join(dir, slug+".md")
	f, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrExists, out)
		}
		return "", err
	}
	data := postData{
		Title:       title,
		Description: "",
		PubDate:     now.Format("2006-01-02"),
	}
	if err := postTemplate.Execute(f, data); err != nil {
		f.Close()
		os.Remove(out)
		return "", fmt.Errorf("scaffold: execute template: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return out, nil
}

// yamlScalar renders s as a YAML scalar, quoting it when needed.
func yamlScalar(s string) (string, error) {
	b, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\n"), nil
}
