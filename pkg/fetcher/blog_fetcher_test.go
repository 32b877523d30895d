package fetcher

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParseBlogURL(t *testing.T) {
	tests := []struct {
		url        string
		wantBlogID string
		wantLogNo  string
		wantErr    bool
	}{
		{"https://blog.naver.com/myblog/223456789012", "myblog", "223456789012", false},
		{"https://m.blog.naver.com/myblog/223456789012", "myblog", "223456789012", false},
		{"https://blog.naver.com/PostView.naver?blogId=myblog&logNo=223456789012", "myblog", "223456789012", false},
		{"https://blog.naver.com/myblog", "", "", true},
		{"https://example.com/some/post", "", "", true},
	}

	for _, tt := range tests {
		blogID, logNo, err := ParseBlogURL(tt.url)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseBlogURL(%q) expected error, got %s/%s", tt.url, blogID, logNo)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseBlogURL(%q) unexpected error: %v", tt.url, err)
			continue
		}
		if blogID != tt.wantBlogID || logNo != tt.wantLogNo {
			t.Errorf("ParseBlogURL(%q) = %s/%s, want %s/%s", tt.url, blogID, logNo, tt.wantBlogID, tt.wantLogNo)
		}
	}
}

type stubPageClient struct {
	body []byte
	err  error
	url  string
}

func (s *stubPageClient) Get(targetURL string) ([]byte, error) {
	s.url = targetURL
	return s.body, s.err
}

const samplePage = `<html><head>
<meta property="og:title" content="강남 맛집 후기" />
<title>강남 맛집 후기 : 네이버 블로그</title>
</head><body>
<script>var tracking = 1;</script>
<div class="se-main-container">
<p>오늘 다녀온 맛집 리뷰입니다.</p>
<p>#강남맛집 #내돈내산</p>
</div>
</body></html>`

func TestFetchPost_ParsesPage(t *testing.T) {
	client := &stubPageClient{body: []byte(samplePage)}
	f := NewBlogFetcher()
	f.SetClient(client)

	post, err := f.FetchPost(context.Background(), "https://blog.naver.com/myblog/223000111222")
	if err != nil {
		t.Fatalf("FetchPost returned error: %v", err)
	}

	if client.url != "https://m.blog.naver.com/myblog/223000111222" {
		t.Errorf("expected mobile URL fetch, got %s", client.url)
	}
	if post.Title != "강남 맛집 후기" {
		t.Errorf("unexpected title %q", post.Title)
	}
	if post.BlogID != "myblog" {
		t.Errorf("unexpected blog id %q", post.BlogID)
	}
	if !strings.Contains(post.Content, "맛집 리뷰") {
		t.Errorf("content not extracted: %q", post.Content)
	}
	if strings.Contains(post.Content, "tracking") {
		t.Error("script content must be stripped")
	}
	if len(post.Hashtags) != 2 || post.Hashtags[0] != "강남맛집" || post.Hashtags[1] != "내돈내산" {
		t.Errorf("unexpected hashtags %v", post.Hashtags)
	}
}

func TestFetchPost_FetchFailureIsFatal(t *testing.T) {
	client := &stubPageClient{err: errors.New("timeout")}
	f := NewBlogFetcher()
	f.SetClient(client)

	if _, err := f.FetchPost(context.Background(), "https://blog.naver.com/myblog/223000111222"); err == nil {
		t.Fatal("expected fetch failure to propagate")
	}
}

func TestExtractTitle_TitleTagFallback(t *testing.T) {
	page := `<html><head><title>제주 여행 코스 : 네이버 블로그</title></head></html>`
	if got := extractTitle(page); got != "제주 여행 코스" {
		t.Errorf("extractTitle = %q, want 제주 여행 코스", got)
	}
}
