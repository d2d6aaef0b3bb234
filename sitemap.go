package blogkit

import (
	"encoding/xml"
	"io"

	"github.com/eringen/blogkit/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// WriteSitemap writes a sitemap listing the home page, the blog index and
// every post in posts. Post lastmod is the updated date when present.
func (s *Site) WriteSitemap(w io.Writer, posts content.Posts) error {
	urls := []sitemapURL{
		{Loc: s.AbsoluteURL("")},
		{Loc: s.AbsoluteURL("blog")},
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     s.AbsoluteURL(postPath(p)),
			LastMod: p.Data.LastModified().Format("2006-01-02"),
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(sitemap)
}
