// Package siteurl builds site-relative URLs under a deployment base path.
package siteurl

import "strings"

// Base is a deployment base path such as "/" or "/test-repo/".
// Resolve it once from configuration and pass it to whatever builds links.
type Base string

// Join appends a slash to basePath unless it already ends in one, then
// appends relativePath with a single leading slash removed.
//
//	Join("/test-repo/", "blog")  -> /test-repo/blog
//	Join("/test-repo", "")       -> /test-repo/
//	Join("", "")                 -> /
func Join(basePath, relativePath string) string {
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath + strings.TrimPrefix(relativePath, "/")
}

// URL joins p onto the base.
func (b Base) URL(p string) string {
	return Join(string(b), p)
}

// String returns the base in its joined form, always ending in a slash.
func (b Base) String() string {
	return b.URL("")
}

// NormalizeBase converts a raw deploy setting (SITE_BASE) into the
// canonical form: "" and "/" become "/", "test-repo", "/test-repo" and
// "test-repo/" all become "/test-repo/".
func NormalizeBase(raw string) Base {
	v := strings.Trim(strings.TrimSpace(raw), "/")
	if v == "" {
		return "/"
	}
	return Base("/" + v + "/")
}

// Absolute returns the site origin followed by the joined path.
// A trailing slash on site is dropped so the result has a single
// separator.
func Absolute(site string, b Base, p string) string {
	path := b.URL(p)
	return strings.TrimRight(site, "/") + path
}
