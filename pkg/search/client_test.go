package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestNaverClientSearch(t *testing.T) {
	var gotHeader http.Header
	var gotQuery url.Values

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(BlogSearchResponse{
			Total:   2,
			Start:   11,
			Display: 10,
			Items: []BlogSearchItem{
				{Title: "첫 글", Link: "https://blog.naver.com/alpha/1", BloggerLink: "https://blog.naver.com/alpha"},
				{Title: "둘째 글", Link: "https://blog.naver.com/beta/2", BloggerLink: "https://blog.naver.com/beta"},
			},
		})
	}))
	defer srv.Close()

	client := NewNaverClient(Credentials{ClientID: "id-123", ClientSecret: "secret-456"})
	client.SetEndpoint(srv.URL)

	page, err := client.Search(context.Background(), "강남 맛집", 11, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	// 1. Credential headers must reach the server
	if got := gotHeader.Get("X-Naver-Client-Id"); got != "id-123" {
		t.Errorf("X-Naver-Client-Id = %q, want %q", got, "id-123")
	}
	if got := gotHeader.Get("X-Naver-Client-Secret"); got != "secret-456" {
		t.Errorf("X-Naver-Client-Secret = %q, want %q", got, "secret-456")
	}

	// 2. Query params carry query, start and display
	if got := gotQuery.Get("query"); got != "강남 맛집" {
		t.Errorf("query param = %q, want %q", got, "강남 맛집")
	}
	if got := gotQuery.Get("start"); got != "11" {
		t.Errorf("start param = %q, want %q", got, "11")
	}
	if got := gotQuery.Get("display"); got != "10" {
		t.Errorf("display param = %q, want %q", got, "10")
	}

	// 3. Response decodes into the page struct
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.Items[0].Link != "https://blog.naver.com/alpha/1" {
		t.Errorf("unexpected first item link: %s", page.Items[0].Link)
	}
	if page.Items[1].BloggerLink != "https://blog.naver.com/beta" {
		t.Errorf("unexpected second item blogger link: %s", page.Items[1].BloggerLink)
	}
}

func TestNaverClientSearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewNaverClient(Credentials{ClientID: "id", ClientSecret: "secret"})
	client.SetEndpoint(srv.URL)

	if _, err := client.Search(context.Background(), "맛집", 1, 10); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
