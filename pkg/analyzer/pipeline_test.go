package analyzer

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"blogrank-go/pkg/extractor"
	"blogrank-go/pkg/fetcher"
)

func intp(n int) *int { return &n }

// mapProber answers probes from a fixed keyword->rank table.
type mapProber struct {
	ranks  map[string]int
	probed []string
}

func (m *mapProber) ProbeRank(ctx context.Context, keyword, blogID string) (int, bool) {
	m.probed = append(m.probed, keyword)
	rank, ok := m.ranks[keyword]
	return rank, ok
}

type stubFetcher struct {
	post *fetcher.RawPost
	err  error
}

func (s *stubFetcher) FetchPost(ctx context.Context, postURL string) (*fetcher.RawPost, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.post, nil
}

func TestSelectBest(t *testing.T) {
	// {a,null},{b,7},{c,3} -> best is c at 3
	ranks := []RankEntry{
		{Keyword: "a", Rank: nil},
		{Keyword: "b", Rank: intp(7)},
		{Keyword: "c", Rank: intp(3)},
	}

	best := SelectBest(ranks)
	if best == nil || best.Keyword != "c" || *best.Rank != 3 {
		t.Fatalf("expected best c/3, got %+v", best)
	}

	good := OtherGoodKeywords(ranks, best)
	if len(good) != 1 || good[0].Keyword != "b" || *good[0].Rank != 7 {
		t.Errorf("expected otherGood [b/7], got %+v", good)
	}
}

func TestSelectBest_TieKeepsPoolOrder(t *testing.T) {
	ranks := []RankEntry{
		{Keyword: "first", Rank: intp(4)},
		{Keyword: "second", Rank: intp(4)},
	}
	best := SelectBest(ranks)
	if best.Keyword != "first" {
		t.Errorf("tie must keep pool order, got %s", best.Keyword)
	}
}

func TestSelectBest_AllNull(t *testing.T) {
	ranks := []RankEntry{
		{Keyword: "a", Rank: nil},
		{Keyword: "b", Rank: nil},
	}
	if best := SelectBest(ranks); best != nil {
		t.Fatalf("expected nil best for all-null ranks, got %+v", best)
	}
	if good := OtherGoodKeywords(ranks, nil); len(good) != 0 {
		t.Errorf("expected no good keywords, got %+v", good)
	}
}

func TestOtherGoodKeywords_ExcludesBeyondTen(t *testing.T) {
	best := &RankEntry{Keyword: "best", Rank: intp(1)}
	ranks := []RankEntry{
		{Keyword: "best", Rank: intp(1)},
		{Keyword: "ok", Rank: intp(10)},
		{Keyword: "meh", Rank: intp(11)},
		{Keyword: "missing", Rank: nil},
		{Keyword: "great", Rank: intp(2)},
	}

	good := OtherGoodKeywords(ranks, best)
	want := []string{"great", "ok"}
	var names []string
	for _, g := range good {
		names = append(names, g.Keyword)
	}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("expected %v in ranked order, got %v", want, names)
	}
}

func TestPipeline_EndToEnd(t *testing.T) {
	// Pool ["맛집","강남 맛집"], rank(맛집)=15, rank(강남 맛집)=2
	// -> finalKeyword = 강남 맛집, grade A
	post := &fetcher.RawPost{
		Title:    "강남 맛집",
		Content:  "후기",
		Hashtags: []string{"맛집", "강남 맛집"},
		BlogID:   "myblog",
		URL:      "https://blog.naver.com/myblog/1",
	}
	prober := &mapProber{ranks: map[string]int{"맛집": 15, "강남 맛집": 2}}
	p := NewPipeline(extractor.NewTextExtractor(), prober, nil, nil)

	var events []Event
	p.SetProgressSink(func(e Event) { events = append(events, e) })

	result, err := p.Analyze(context.Background(), post)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if result.FinalKeyword == nil || *result.FinalKeyword != "강남 맛집" {
		t.Errorf("expected final keyword 강남 맛집, got %v", result.FinalKeyword)
	}
	if result.BestRank == nil || *result.BestRank != 2 {
		t.Errorf("expected best rank 2, got %v", result.BestRank)
	}
	if result.Grade != GradeA {
		t.Errorf("expected grade A, got %s", result.Grade)
	}

	// Pool order and rank order must match
	if len(result.Ranks) != len(result.Pool) {
		t.Fatalf("ranks/pool length mismatch: %d vs %d", len(result.Ranks), len(result.Pool))
	}
	for i := range result.Pool {
		if result.Ranks[i].Keyword != result.Pool[i] {
			t.Errorf("ranks[%d]=%s does not match pool[%d]=%s",
				i, result.Ranks[i].Keyword, i, result.Pool[i])
		}
	}

	// First probe is the diagnostic title probe, then pool members in order
	if prober.probed[0] != post.Title {
		t.Errorf("expected title probed first, got %s", prober.probed[0])
	}
	if !reflect.DeepEqual(prober.probed[1:1+len(result.Pool)], result.Pool) {
		t.Errorf("pool probed out of order: %v", prober.probed[1:])
	}

	// Progress events arrive in pipeline stage order
	wantOrder := []Step{StepExtracting, StepProbingTitle, StepProbingPool, StepSelecting, StepComplete}
	seen := -1
	for _, e := range events {
		for i, step := range wantOrder {
			if e.Step == step {
				if i < seen {
					t.Fatalf("event %s arrived after later stage", e.Step)
				}
				seen = i
			}
		}
	}
	if events[len(events)-1].Step != StepComplete {
		t.Errorf("expected final event to be complete, got %s", events[len(events)-1].Step)
	}
}

func TestPipeline_AllUnexposed(t *testing.T) {
	post := &fetcher.RawPost{
		Title:    "노출 안 된 글",
		Content:  "본문",
		Hashtags: []string{"태그하나"},
		BlogID:   "myblog",
		URL:      "https://blog.naver.com/myblog/2",
	}
	prober := &mapProber{ranks: map[string]int{}}
	p := NewPipeline(extractor.NewTextExtractor(), prober, nil, nil)

	result, err := p.Analyze(context.Background(), post)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.BestKeyword != nil || result.BestRank != nil || result.FinalKeyword != nil {
		t.Errorf("expected nil best/final for all-null ranks, got %+v", result)
	}
	if len(result.OtherGoodKeywords) != 0 {
		t.Errorf("expected no good keywords, got %v", result.OtherGoodKeywords)
	}
	if result.Grade != GradeUnexposed {
		t.Errorf("expected grade 미노출, got %s", result.Grade)
	}
}

func TestPipeline_FetchFailureIsTerminal(t *testing.T) {
	p := NewPipeline(extractor.NewTextExtractor(), &mapProber{}, nil,
		&stubFetcher{err: errors.New("network down")})

	var sawError bool
	p.SetProgressSink(func(e Event) {
		if e.Step == StepError {
			sawError = true
		}
	})

	if _, err := p.AnalyzeURL(context.Background(), "https://blog.naver.com/x/1"); err == nil {
		t.Fatal("expected fetch failure to propagate as error")
	}
	if !sawError {
		t.Error("expected an error progress event")
	}
}
