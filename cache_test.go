package blogkit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/blogkit/content"
)

type countingLoader struct {
	mu    sync.Mutex
	calls int
	posts content.Posts
	err   error
}

func (l *countingLoader) load(context.Context) (content.Posts, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	return l.posts, l.err
}

func (l *countingLoader) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func cachedPosts() content.Posts {
	return content.Posts{
		{Slug: "draft", Data: content.BlogPostMetadata{Draft: true, Tags: []string{"go"}}},
		{Slug: "b", Data: content.BlogPostMetadata{Tags: []string{"Go", "web"}}},
		{Slug: "a", Data: content.BlogPostMetadata{Tags: []string{"rust"}}},
	}
}

func TestPostCacheLoadsOnce(t *testing.T) {
	l := &countingLoader{posts: cachedPosts()}
	c := NewPostCache(l.load, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Posts(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, l.count())

	c.Invalidate()
	_, err := c.Posts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, l.count())
}

func TestPostCacheExpires(t *testing.T) {
	l := &countingLoader{posts: cachedPosts()}
	c := NewPostCache(l.load, 10*time.Millisecond)
	ctx := context.Background()

	_, err := c.Posts(ctx)
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	_, err = c.Posts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, l.count())
}

func TestPostCacheQueries(t *testing.T) {
	c := NewPostCache((&countingLoader{posts: cachedPosts()}).load, time.Minute)
	ctx := context.Background()

	posts, err := c.ListPosts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, posts, 2, "drafts are not listed")

	posts, err = c.ListPosts(ctx, "go")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "b", posts[0].Slug)

	tags, err := c.ListTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "rust", "web"}, tags)

	got, err := c.GetPost(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Slug)

	_, err = c.GetPost(ctx, "draft")
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestPostCacheDoesNotCacheErrors(t *testing.T) {
	l := &countingLoader{err: errors.New("boom")}
	c := NewPostCache(l.load, time.Minute)
	ctx := context.Background()

	_, err := c.Posts(ctx)
	assert.Error(t, err)
	_, err = c.ListTags(ctx)
	assert.Error(t, err)
	assert.Equal(t, 2, l.count())
}

func TestPostCacheEmptyCollection(t *testing.T) {
	l := &countingLoader{}
	c := NewPostCache(l.load, time.Minute)

	posts, err := c.Posts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
	_, _ = c.Posts(context.Background())
	assert.Equal(t, 1, l.count(), "an empty collection is still cached")
}
