package blogkit

import (
	"context"
	"sync"
	"time"

	"github.com/eringen/blogkit/content"
)

// LoadFunc loads a complete, validated collection.
type LoadFunc func(ctx context.Context) (content.Posts, error)

// PostCache is an in-memory cache of a loaded collection with TTL.
type PostCache struct {
	mu      sync.RWMutex
	posts   content.Posts
	fetched time.Time
	ttl     time.Duration
	load    LoadFunc
}

// NewPostCache creates a PostCache backed by load.
func NewPostCache(load LoadFunc, ttl time.Duration) *PostCache {
	return &PostCache{load: load, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

// ensureLoaded returns cached posts after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded(ctx context.Context) (content.Posts, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, nil
	}
	posts, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = content.Posts{}
	}
	c.posts = posts
	c.fetched = time.Now()
	return c.posts, nil
}

// Posts returns every entry, drafts included.
func (c *PostCache) Posts(ctx context.Context) (content.Posts, error) {
	return c.ensureLoaded(ctx)
}

// ListPosts returns published posts, optionally filtered by tag.
func (c *PostCache) ListPosts(ctx context.Context, tag string) (content.Posts, error) {
	posts, err := c.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return posts.Published().WithTag(tag), nil
}

// ListTags returns all unique tags from published posts.
func (c *PostCache) ListTags(ctx context.Context) ([]string, error) {
	posts, err := c.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return posts.Published().Tags(), nil
}

// GetPost returns a single published post by slug.
func (c *PostCache) GetPost(ctx context.Context, slug string) (content.Entry, error) {
	posts, err := c.ensureLoaded(ctx)
	if err != nil {
		return content.Entry{}, err
	}
	return posts.Published().Get(slug)
}
