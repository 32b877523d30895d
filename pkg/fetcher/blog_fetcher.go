package fetcher

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	"blogrank-go/pkg/extractor"
	"blogrank-go/pkg/logger"
)

var (
	pathStylePattern = regexp.MustCompile(`blog\.naver\.com/([A-Za-z0-9_-]+)/(\d+)`)

	ogTitlePattern  = regexp.MustCompile(`(?is)<meta[^>]+property="og:title"[^>]+content="([^"]*)"`)
	titleTagPattern = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	mainTextPattern = regexp.MustCompile(`(?is)<div[^>]+class="[^"]*se-main-container[^"]*"[^>]*>(.*)`)
	scriptPattern   = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	tagPattern      = regexp.MustCompile(`(?s)<[^>]*>`)
	whitespaceRun   = regexp.MustCompile(`[ \t\r\f\v]+`)
)

// PageClient fetches a URL and returns its body as UTF-8 text.
type PageClient interface {
	Get(targetURL string) ([]byte, error)
}

// BlogFetcher retrieves Naver blog posts through the mobile page,
// which serves the post body without the desktop iframe indirection.
type BlogFetcher struct {
	client PageClient
	log    *logger.Logger
}

// NewBlogFetcher creates a content fetcher over the shared HTTP client.
func NewBlogFetcher() *BlogFetcher {
	return &BlogFetcher{
		client: NewHTTPClient(),
		log:    logger.GetLogger().WithField("component", "blog_fetcher"),
	}
}

// SetClient allows injection of a different page client. Used by tests.
func (f *BlogFetcher) SetClient(client PageClient) {
	f.client = client
}

// FetchPost downloads and parses a blog post. The error is fatal for
// the post being analyzed; the caller decides whether to continue with
// other posts.
func (f *BlogFetcher) FetchPost(ctx context.Context, postURL string) (*RawPost, error) {
	blogID, logNo, err := ParseBlogURL(postURL)
	if err != nil {
		return nil, err
	}

	mobileURL := fmt.Sprintf("https://m.blog.naver.com/%s/%s", blogID, logNo)
	body, err := f.client.Get(mobileURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blog post %s: %w", mobileURL, err)
	}

	page := string(body)
	title := extractTitle(page)
	content := extractContent(page)
	if title == "" && content == "" {
		return nil, fmt.Errorf("no readable content at %s", mobileURL)
	}

	hashtags := extractor.NewTextExtractor().Hashtags(title + " " + content)

	f.log.WithFields(map[string]interface{}{
		"blog_id":      blogID,
		"log_no":       logNo,
		"content_size": len(content),
		"hashtags":     len(hashtags),
	}).Debug("Blog post fetched")

	return &RawPost{
		Title:    title,
		Content:  content,
		Hashtags: hashtags,
		BlogID:   blogID,
		URL:      postURL,
	}, nil
}

// ParseBlogURL extracts the blog id and post number from either URL
// form Naver uses: path style (blog.naver.com/{id}/{logNo}) and query
// style (PostView.naver?blogId=...&logNo=...). Mobile and desktop
// hosts are both accepted.
func ParseBlogURL(postURL string) (blogID, logNo string, err error) {
	parsed, parseErr := url.Parse(postURL)
	if parseErr == nil {
		q := parsed.Query()
		if q.Get("blogId") != "" && q.Get("logNo") != "" {
			return q.Get("blogId"), q.Get("logNo"), nil
		}
	}

	if m := pathStylePattern.FindStringSubmatch(postURL); m != nil {
		return m[1], m[2], nil
	}

	return "", "", fmt.Errorf("unrecognized naver blog URL: %s", postURL)
}

func extractTitle(page string) string {
	if m := ogTitlePattern.FindStringSubmatch(page); m != nil {
		return strings.TrimSpace(html.UnescapeString(m[1]))
	}
	if m := titleTagPattern.FindStringSubmatch(page); m != nil {
		title := strings.TrimSpace(html.UnescapeString(m[1]))
		// Naver appends " : 네이버 블로그" to the title tag
		if idx := strings.Index(title, " : "); idx > 0 {
			title = title[:idx]
		}
		return title
	}
	return ""
}

// extractContent strips the page down to plain text. When the smart
// editor container is present only its subtree is used, otherwise the
// whole page body is stripped as a fallback.
func extractContent(page string) string {
	region := page
	if m := mainTextPattern.FindStringSubmatch(page); m != nil {
		region = m[1]
	}

	region = scriptPattern.ReplaceAllString(region, " ")
	region = tagPattern.ReplaceAllString(region, " ")
	region = html.UnescapeString(region)
	region = whitespaceRun.ReplaceAllString(region, " ")

	var lines []string
	for _, line := range strings.Split(region, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}
