package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"blogrank-go/pkg/extractor"
	"blogrank-go/pkg/fetcher"
)

type stubLister struct {
	posts []fetcher.PostSummary
	err   error
}

func (s *stubLister) ListRecent(ctx context.Context, blogID string, count int) ([]fetcher.PostSummary, error) {
	return s.posts, s.err
}

// urlFetcher fails for URLs in the bad set and fabricates a post
// otherwise.
type urlFetcher struct {
	bad map[string]bool
}

func (u *urlFetcher) FetchPost(ctx context.Context, postURL string) (*fetcher.RawPost, error) {
	if u.bad[postURL] {
		return nil, errors.New("fetch failed")
	}
	return &fetcher.RawPost{
		Title:    "포스트 제목",
		Content:  "본문",
		Hashtags: []string{"태그"},
		BlogID:   "myblog",
		URL:      postURL,
	}, nil
}

func TestAnalyzeRecent_ContinuesPastFailures(t *testing.T) {
	lister := &stubLister{posts: []fetcher.PostSummary{
		{Title: "글1", Link: "https://blog.naver.com/myblog/1"},
		{Title: "글2", Link: "https://blog.naver.com/myblog/2"},
		{Title: "글3", Link: "https://blog.naver.com/myblog/3"},
	}}
	pipe := NewPipeline(extractor.NewTextExtractor(), &mapProber{ranks: map[string]int{"태그": 3}}, nil,
		&urlFetcher{bad: map[string]bool{"https://blog.naver.com/myblog/2": true}})
	runner := NewBatchRunnerWithInterval(lister, pipe, time.Millisecond)

	batch, err := runner.AnalyzeRecent(context.Background(), "myblog", 10)
	if err != nil {
		t.Fatalf("AnalyzeRecent returned error: %v", err)
	}

	if len(batch.Results) != 2 {
		t.Errorf("expected 2 successful analyses, got %d", len(batch.Results))
	}
	if len(batch.Failed) != 1 || batch.Failed[0].URL != "https://blog.naver.com/myblog/2" {
		t.Errorf("expected one recorded failure for post 2, got %+v", batch.Failed)
	}
}

func TestAnalyzeRecent_EmptyFeed(t *testing.T) {
	runner := NewBatchRunnerWithInterval(&stubLister{}, nil, time.Millisecond)

	batch, err := runner.AnalyzeRecent(context.Background(), "myblog", 10)
	if err != nil {
		t.Fatalf("empty feed must not error: %v", err)
	}
	if len(batch.Results) != 0 || len(batch.Failed) != 0 {
		t.Errorf("expected empty batch, got %+v", batch)
	}
}

func TestAnalyzeRecent_ListerErrorPropagates(t *testing.T) {
	runner := NewBatchRunnerWithInterval(&stubLister{err: errors.New("feed down")}, nil, time.Millisecond)

	if _, err := runner.AnalyzeRecent(context.Background(), "myblog", 10); err == nil {
		t.Fatal("expected lister error to propagate")
	}
}
