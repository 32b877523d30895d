package fetcher

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"strings"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"blogrank-go/pkg/logger"
)

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
}

type rssChannel struct {
	Title string    `xml:"title"`
	Items []rssItem `xml:"item"`
}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

// RSSLister reads a blog's recent posts from its public RSS feed.
type RSSLister struct {
	client  PageClient
	feedURL func(blogID string) string
	log     *logger.Logger
}

// NewRSSLister creates a recent-posts lister backed by the Naver blog
// RSS endpoint.
func NewRSSLister() *RSSLister {
	return &RSSLister{
		client: NewHTTPClient(),
		feedURL: func(blogID string) string {
			return fmt.Sprintf("https://rss.blog.naver.com/%s.xml", blogID)
		},
		log: logger.GetLogger().WithField("component", "rss_lister"),
	}
}

// SetClient allows injection of a different page client. Used by tests.
func (l *RSSLister) SetClient(client PageClient) {
	l.client = client
}

// ListRecent returns up to count recent posts, newest first. An empty
// feed yields an empty slice, not an error.
func (l *RSSLister) ListRecent(ctx context.Context, blogID string, count int) ([]PostSummary, error) {
	body, err := l.client.Get(l.feedURL(blogID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch RSS feed for %s: %w", blogID, err)
	}

	posts, err := ParseFeed(body, count)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed for %s: %w", blogID, err)
	}

	l.log.WithFields(map[string]interface{}{
		"blog_id": blogID,
		"posts":   len(posts),
	}).Debug("Recent posts listed")

	return posts, nil
}

// ParseFeed decodes an RSS payload into post summaries, tolerating
// the EUC-KR encoding declarations older feeds carry.
func ParseFeed(body []byte, count int) ([]PostSummary, error) {
	var feed rssFeed
	decoder := xml.NewDecoder(bytes.NewReader(body))
	decoder.CharsetReader = charsetReader
	if err := decoder.Decode(&feed); err != nil {
		return nil, fmt.Errorf("invalid RSS document: %w", err)
	}

	posts := make([]PostSummary, 0, count)
	for _, item := range feed.Channel.Items {
		if count > 0 && len(posts) >= count {
			break
		}
		title := strings.TrimSpace(html.UnescapeString(item.Title))
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}
		posts = append(posts, PostSummary{Title: title, Link: link})
	}
	return posts, nil
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return input, nil
	case "euc-kr", "ks_c_5601-1987", "cp949":
		return transform.NewReader(input, korean.EUCKR.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported feed charset: %s", charset)
	}
}
