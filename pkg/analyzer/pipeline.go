package analyzer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"blogrank-go/pkg/extractor"
	"blogrank-go/pkg/fetcher"
	"blogrank-go/pkg/logger"
	"blogrank-go/pkg/search"
	"blogrank-go/pkg/volume"
)

// Pipeline runs the keyword-ranking analysis for a single post:
// extraction, sequential rank probing, best-keyword selection, grading
// and optional volume enrichment. Every step is strictly sequential;
// the search API is rate sensitive and the running rank counter
// depends on page order.
type Pipeline struct {
	extractor extractor.KeywordExtractor
	prober    search.Prober
	volumes   volume.Provider
	fetch     fetcher.ContentFetcher
	sink      ProgressSink
	log       *logger.Logger
}

// NewPipeline wires an analysis pipeline. volumes may be nil when the
// SearchAd credentials are not configured; enrichment is then skipped.
func NewPipeline(kx extractor.KeywordExtractor, prober search.Prober, volumes volume.Provider, fetch fetcher.ContentFetcher) *Pipeline {
	return &Pipeline{
		extractor: kx,
		prober:    prober,
		volumes:   volumes,
		fetch:     fetch,
		log:       logger.GetLogger().WithField("component", "pipeline"),
	}
}

// SetProgressSink installs the progress event callback. A nil sink
// disables progress reporting.
func (p *Pipeline) SetProgressSink(sink ProgressSink) {
	p.sink = sink
}

// AnalyzeURL fetches a post and analyzes it. A fetch failure is fatal
// for this post and is returned as an error after an error event.
func (p *Pipeline) AnalyzeURL(ctx context.Context, postURL string) (*Result, error) {
	post, err := p.fetch.FetchPost(ctx, postURL)
	if err != nil {
		p.emit(StepError, fmt.Sprintf("본문 수집 실패: %v", err), "", nil)
		return nil, fmt.Errorf("content fetch failed: %w", err)
	}
	return p.Analyze(ctx, post)
}

// Analyze runs the full pipeline over an already-fetched post. It
// returns a complete immutable Result or an error, never a partial
// result.
func (p *Pipeline) Analyze(ctx context.Context, post *fetcher.RawPost) (*Result, error) {
	if post == nil {
		return nil, fmt.Errorf("nil post")
	}

	// Step 1: extraction and pool build
	p.emit(StepExtracting, "키워드 추출 시작: "+post.Title, "", nil)

	hashtags := mergeHashtags(post.Hashtags, p.extractor.Hashtags(post.Title+" "+post.Content))
	smart := p.extractor.SmartKeywords(post.Title, post.Content, hashtags)
	pool := p.extractor.Pool(hashtags, smart)

	p.emit(StepExtracting, fmt.Sprintf("추출 완료: 해시태그 %d개, 스마트 키워드 %d개, 후보 %d개",
		len(hashtags), len(smart), len(pool)), "", nil)

	// Step 2: diagnostic rank for the full title text
	p.emit(StepProbingTitle, "제목 전체로 순위 확인 중...", post.Title, nil)
	titleRank := p.probe(ctx, post.Title, post.BlogID)
	p.emit(StepProbingTitle, rankMessage(post.Title, titleRank), post.Title, titleRank)

	// Step 3: sequential probe of every pool member, in pool order
	ranks := make([]RankEntry, 0, len(pool))
	for _, keyword := range pool {
		if err := ctx.Err(); err != nil {
			p.emit(StepError, "분석 중단: "+err.Error(), keyword, nil)
			return nil, err
		}
		p.emit(StepProbingPool, "순위 확인 중: "+keyword, keyword, nil)
		rank := p.probe(ctx, keyword, post.BlogID)
		ranks = append(ranks, RankEntry{Keyword: keyword, Rank: rank})
		p.emit(StepProbingPool, rankMessage(keyword, rank), keyword, rank)
	}

	// Steps 4-6: selection, runner-up keywords, final alias
	p.emit(StepSelecting, "최적 키워드 선정 중...", "", nil)
	best := SelectBest(ranks)
	otherGood := OtherGoodKeywords(ranks, best)

	result := &Result{
		ID:                uuid.NewString(),
		BlogID:            post.BlogID,
		URL:               post.URL,
		Title:             post.Title,
		Hashtags:          hashtags,
		SmartKeywords:     smart,
		Pool:              pool,
		TitleRank:         titleRank,
		Ranks:             ranks,
		OtherGoodKeywords: otherGood,
		AnalyzedAt:        time.Now(),
	}

	if best != nil {
		keyword := best.Keyword
		result.BestKeyword = &keyword
		result.BestRank = best.Rank
		// Volume is attached for display but never re-weights the
		// selection; the best-ranked keyword is always final.
		result.FinalKeyword = &keyword
		p.emit(StepSelecting, fmt.Sprintf("최적 키워드: %s (%d위)", keyword, *best.Rank), keyword, best.Rank)
	} else {
		p.emit(StepSelecting, "노출된 키워드가 없습니다", "", nil)
	}
	result.Grade = CalcGrade(result.BestRank)

	// Optional enrichment, credential-gated and best-effort
	if result.BestKeyword != nil && p.volumes != nil {
		p.emit(StepEnriching, "월간 검색량 조회 중: "+*result.BestKeyword, *result.BestKeyword, nil)
		vol, err := p.volumes.GetVolume(ctx, *result.BestKeyword)
		if err != nil {
			p.log.WithError(err).WithField("keyword", *result.BestKeyword).Warn("Search volume lookup failed")
			p.emit(StepEnriching, "검색량 조회 실패 (무시)", *result.BestKeyword, nil)
		} else if vol != nil {
			result.SearchVolume = vol
			p.emit(StepEnriching, fmt.Sprintf("월간 검색량: %d", vol.Total), *result.BestKeyword, nil)
		}
	}

	p.emit(StepComplete, fmt.Sprintf("분석 완료: 등급 %s", result.Grade), "", result.BestRank)

	return result, nil
}

// probe wraps the prober's (rank, found) pair into the nullable rank
// the data model uses.
func (p *Pipeline) probe(ctx context.Context, keyword, blogID string) *int {
	rank, found := p.prober.ProbeRank(ctx, keyword, blogID)
	if !found {
		return nil
	}
	return &rank
}

func (p *Pipeline) emit(step Step, message, keyword string, rank *int) {
	if p.sink == nil {
		return
	}
	p.sink(Event{
		Step:    step,
		Message: message,
		Keyword: keyword,
		Rank:    rank,
		At:      time.Now(),
	})
}

// SelectBest picks the ranked entry with the lowest rank. Ties keep
// pool order: the first keyword probed wins among equal ranks. Returns
// nil when nothing ranked.
func SelectBest(ranks []RankEntry) *RankEntry {
	var best *RankEntry
	for i := range ranks {
		entry := &ranks[i]
		if entry.Rank == nil {
			continue
		}
		if best == nil || *entry.Rank < *best.Rank {
			best = entry
		}
	}
	return best
}

// OtherGoodKeywords returns every ranked entry other than the best
// whose rank is within the top 10, ordered by rank ascending. Equal
// ranks keep pool order.
func OtherGoodKeywords(ranks []RankEntry, best *RankEntry) []RankEntry {
	good := make([]RankEntry, 0)
	for _, entry := range ranks {
		if entry.Rank == nil || *entry.Rank > 10 {
			continue
		}
		if best != nil && entry.Keyword == best.Keyword {
			continue
		}
		good = append(good, entry)
	}
	sort.SliceStable(good, func(i, j int) bool {
		return *good[i].Rank < *good[j].Rank
	})
	return good
}

// mergeHashtags unions author-supplied and extracted hashtags keeping
// first occurrence order.
func mergeHashtags(fromPost, fromText []string) []string {
	seen := make(map[string]bool)
	merged := make([]string, 0, len(fromPost)+len(fromText))
	for _, group := range [][]string{fromPost, fromText} {
		for _, tag := range group {
			if tag != "" && !seen[tag] {
				seen[tag] = true
				merged = append(merged, tag)
			}
		}
	}
	return merged
}

func rankMessage(keyword string, rank *int) string {
	if rank == nil {
		return fmt.Sprintf("%s: 100위 내 미노출", keyword)
	}
	return fmt.Sprintf("%s: %d위", keyword, *rank)
}
