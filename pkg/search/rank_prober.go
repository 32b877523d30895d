package search

import (
	"context"
	"strings"

	"blogrank-go/pkg/logger"
)

const (
	// PageSize is the number of results requested per API page.
	PageSize = 10
	// RankHorizon is the deepest result position scanned before
	// concluding the blog is not exposed for a keyword.
	RankHorizon = 100
)

// RankProber pages through blog search results looking for the target
// blog. Pages are fetched strictly one after another; the search API
// is rate sensitive and the running counter semantics depend on order.
type RankProber struct {
	client   Client
	pageSize int
	horizon  int
	log      *logger.Logger
}

// NewRankProber creates a prober over the given search client.
func NewRankProber(client Client) *RankProber {
	return &RankProber{
		client:   client,
		pageSize: PageSize,
		horizon:  RankHorizon,
		log:      logger.GetLogger().WithField("component", "rank_prober"),
	}
}

// ProbeRank returns the blog's 1-indexed absolute position for the
// keyword, or found=false when the blog is absent from the top
// RankHorizon results. Transport and auth failures are logged and
// reported as not found; a failed probe never aborts an analysis.
func (p *RankProber) ProbeRank(ctx context.Context, keyword, blogID string) (int, bool) {
	needle := strings.ToLower("blog.naver.com/" + blogID)
	rank := 0

	for start := 1; start <= p.horizon; start += p.pageSize {
		page, err := p.client.Search(ctx, keyword, start, p.pageSize)
		if err != nil {
			p.log.WithError(err).WithFields(map[string]interface{}{
				"keyword": keyword,
				"start":   start,
			}).Warn("Rank probe page failed, treating keyword as not exposed")
			return 0, false
		}

		for _, item := range page.Items {
			rank++
			if rank > p.horizon {
				return 0, false
			}
			if p.matches(item, needle) {
				p.log.WithFields(map[string]interface{}{
					"keyword": keyword,
					"rank":    rank,
				}).Debug("Blog found in search results")
				return rank, true
			}
		}

		// Short page means the result set is exhausted.
		if len(page.Items) < p.pageSize {
			break
		}
	}

	return 0, false
}

// matches checks the result link and the blogger's home link for the
// target blog, case-insensitively.
func (p *RankProber) matches(item BlogSearchItem, needle string) bool {
	if strings.Contains(strings.ToLower(item.Link), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(item.BloggerLink), needle)
}
