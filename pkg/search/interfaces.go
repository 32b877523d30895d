package search

import "context"

// BlogSearchResponse represents one page of the Naver blog search API
type BlogSearchResponse struct {
	Total   int              `json:"total"`
	Start   int              `json:"start"`
	Display int              `json:"display"`
	Items   []BlogSearchItem `json:"items"`
}

// BlogSearchItem represents a single blog search result
type BlogSearchItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	BloggerName string `json:"bloggername"`
	BloggerLink string `json:"bloggerlink"`
	PostDate    string `json:"postdate"`
}

// Client fetches one page of blog search results for a query.
// start is 1-based, display is the page size.
type Client interface {
	Search(ctx context.Context, query string, start, display int) (*BlogSearchResponse, error)
}

// Prober locates a blog's organic position for a keyword.
// found is false when the blog does not appear within the rank
// horizon or the lookup failed; ranking is best-effort and never
// returns an error to the caller.
type Prober interface {
	ProbeRank(ctx context.Context, keyword, blogID string) (rank int, found bool)
}
