package content

import (
	"sort"
	"strings"
)

// Posts is a loaded collection, newest first.
type Posts []Entry

// Published returns the posts that are not drafts.
func (ps Posts) Published() Posts {
	out := make(Posts, 0, len(ps))
	for _, p := range ps {
		if !p.Data.Draft {
			out = append(out, p)
		}
	}
	return out
}

// WithTag returns the posts carrying tag, compared case-insensitively.
// An empty tag returns ps unchanged.
func (ps Posts) WithTag(tag string) Posts {
	if tag == "" {
		return ps
	}
	normalized := normalizeTag(tag)
	var filtered Posts
	for _, p := range ps {
		for _, t := range p.Data.Tags {
			if normalizeTag(t) == normalized {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered
}

// Tags returns a sorted, deduplicated slice of lowercase tags.
func (ps Posts) Tags() []string {
	set := make(map[string]struct{})
	for _, p := range ps {
		for _, t := range p.Data.Tags {
			if tag := normalizeTag(t); tag != "" {
				set[tag] = struct{}{}
			}
		}
	}
	result := make([]string, 0, len(set))
	for t := range set {
		result = append(result, t)
	}
	sort.Strings(result)
	return result
}

// Get returns the post with the given slug.
func (ps Posts) Get(slug string) (Entry, error) {
	for _, p := range ps {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Entry{}, ErrNotFound
}

// Related finds posts that share at least one tag with current.
func (ps Posts) Related(current Entry) Posts {
	tagSet := make(map[string]struct{})
	for _, t := range current.Data.Tags {
		if tag := normalizeTag(t); tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	var related Posts
	for _, p := range ps {
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range p.Data.Tags {
			if _, ok := tagSet[normalizeTag(t)]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
