package blogkit

import (
	"encoding/xml"
	"io"
	"time"

	"github.com/eringen/blogkit/content"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category,omitempty"`
}

// WriteRSS writes an RSS 2.0 feed for posts.
func (s *Site) WriteRSS(w io.Writer, posts content.Posts) error {
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		postURL := s.AbsoluteURL(postPath(p))
		items = append(items, rssItem{
			Title:       p.Data.Title,
			Link:        postURL,
			Description: p.Data.Description,
			PubDate:     p.Data.PubDate.Format(time.RFC1123Z),
			GUID:        postURL,
			Categories:  p.Data.Tags,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       s.Config.Name,
			Link:        s.AbsoluteURL(""),
			Description: s.Config.Description,
			Items:       items,
		},
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(feed)
}
