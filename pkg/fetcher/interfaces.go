package fetcher

import "context"

// RawPost is a fetched and parsed blog post. Immutable once obtained.
type RawPost struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
	BlogID   string   `json:"blog_id"`
	URL      string   `json:"url"`
}

// PostSummary is one entry from a blog's recent-post feed.
type PostSummary struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// ContentFetcher retrieves and parses a single blog post. A fetch
// failure is fatal for the post being analyzed.
type ContentFetcher interface {
	FetchPost(ctx context.Context, postURL string) (*RawPost, error)
}

// RecentLister returns a blog's most recent posts. An empty list is a
// valid "nothing to analyze" outcome, not an error.
type RecentLister interface {
	ListRecent(ctx context.Context, blogID string, count int) ([]PostSummary, error)
}
