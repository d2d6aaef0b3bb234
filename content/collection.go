package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Entry is one validated content file.
type Entry struct {
	ID   string // path relative to the collection directory
	Slug string
	Data BlogPostMetadata
	Body string
}

// Collection is a directory of content files sharing one schema.
type Collection struct {
	Name      string
	Dir       string
	validator *Validator
}

// NewCollection compiles schema and returns a collection rooted at dir.
func NewCollection(dir string, schema Schema) (*Collection, error) {
	v, err := schema.Compile()
	if err != nil {
		return nil, err
	}
	return &Collection{Name: schema.Collection, Dir: dir, validator: v}, nil
}

// BlogCollection returns the blog collection. Its Dir is relative to the
// content root handed to Load and Check.
func BlogCollection() *Collection {
	return &Collection{
		Name:      BlogSchema.Collection,
		Dir:       BlogSchema.Collection,
		validator: BlogSchema.MustCompile(),
	}
}

// Load reads and validates every content file in the collection. It stops
// at the first invalid file and returns no entries in that case. Entries
// are ordered by publish date, newest first.
func (c *Collection) Load(ctx context.Context, fsys fs.FS) (Posts, error) {
	files, err := c.files(fsys)
	if err != nil {
		return nil, err
	}
	posts := make(Posts, 0, len(files))
	seen := make(map[string]string, len(files))
	for _, id := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e, err := c.loadEntry(fsys, id)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[e.Slug]; ok {
			return nil, &EntryError{Path: c.filePath(id), Err: fmt.Errorf("%w: slug %q already used by %s", ErrInvalidEntry, e.Slug, prev)}
		}
		seen[e.Slug] = id
		posts = append(posts, e)
	}
	sortPosts(posts)
	return posts, nil
}

// Check validates every content file and reports all failures together.
// It returns the number of files checked.
func (c *Collection) Check(fsys fs.FS) (int, error) {
	files, err := c.files(fsys)
	if err != nil {
		return 0, err
	}
	var result *multierror.Error
	seen := make(map[string]string, len(files))
	for _, id := range files {
		e, err := c.loadEntry(fsys, id)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if prev, ok := seen[e.Slug]; ok {
			result = multierror.Append(result, &EntryError{Path: c.filePath(id), Err: fmt.Errorf("%w: slug %q already used by %s", ErrInvalidEntry, e.Slug, prev)})
			continue
		}
		seen[e.Slug] = id
	}
	return len(files), result.ErrorOrNil()
}

func (c *Collection) files(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, c.Dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if p != c.Dir && strings.HasPrefix(name, "_") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, "_") || !isContentFile(name) {
			return nil
		}
		rel := p
		if c.Dir != "." {
			rel = strings.TrimPrefix(p, c.Dir+"/")
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("content: walk %s: %w", c.Dir, err)
	}
	sort.Strings(files)
	return files, nil
}

func (c *Collection) loadEntry(fsys fs.FS, id string) (Entry, error) {
	file := c.filePath(id)
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return Entry{}, &EntryError{Path: file, Err: err}
	}
	raw, body, err := ParseFrontMatter(data)
	if err != nil {
		return Entry{}, &EntryError{Path: file, Err: fmt.Errorf("%w: %w", ErrInvalidEntry, err)}
	}
	meta, err := c.validator.Validate(raw)
	if err != nil {
		return Entry{}, &EntryError{Path: file, Err: err}
	}
	return Entry{
		ID:   id,
		Slug: SlugFromID(id),
		Data: meta,
		Body: body,
	}, nil
}

func (c *Collection) filePath(id string) string {
	return path.Join(c.Dir, id)
}

func isContentFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// SlugFromID derives an entry slug from its collection-relative path:
// the extension is dropped and each segment is slugified.
func SlugFromID(id string) string {
	id = strings.TrimSuffix(id, path.Ext(id))
	parts := strings.Split(id, "/")
	for i, p := range parts {
		if s := Slugify(p); s != "" {
			parts[i] = s
		}
	}
	return strings.Join(parts, "/")
}

func sortPosts(posts Posts) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i].Data.PubDate, posts[j].Data.PubDate
		if !a.Equal(b) {
			return a.After(b)
		}
		return posts[i].Slug < posts[j].Slug
	})
}
