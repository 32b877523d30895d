package analyzer

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"blogrank-go/pkg/fetcher"
	"blogrank-go/pkg/logger"
)

// DefaultBatchInterval is the pause inserted between successive post
// analyses in a batch to keep the request rate down.
const DefaultBatchInterval = 1500 * time.Millisecond

// BatchError records a post that failed during a batch run.
type BatchError struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Error string `json:"error"`
}

// BatchResult aggregates a recent-posts batch run.
type BatchResult struct {
	BlogID  string       `json:"blog_id"`
	Results []*Result    `json:"results"`
	Failed  []BatchError `json:"failed"`
}

// BatchRunner analyzes a blog's recent posts one at a time. There is
// no parallelism and no cancellation of an in-flight analysis: each
// post runs to completion or failure before the next starts, with a
// throttling pause in between.
type BatchRunner struct {
	lister   fetcher.RecentLister
	pipeline *Pipeline
	limiter  *rate.Limiter
	log      *logger.Logger
}

// NewBatchRunner creates a batch runner with the default inter-post
// interval.
func NewBatchRunner(lister fetcher.RecentLister, pipeline *Pipeline) *BatchRunner {
	return NewBatchRunnerWithInterval(lister, pipeline, DefaultBatchInterval)
}

// NewBatchRunnerWithInterval creates a batch runner with a custom
// inter-post interval. Used by tests to avoid real waiting.
func NewBatchRunnerWithInterval(lister fetcher.RecentLister, pipeline *Pipeline, interval time.Duration) *BatchRunner {
	return &BatchRunner{
		lister:   lister,
		pipeline: pipeline,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		log:      logger.GetLogger().WithField("component", "batch_runner"),
	}
}

// AnalyzeRecent lists a blog's recent posts and analyzes each in feed
// order. A post that fails is recorded and skipped; the batch always
// continues. An empty feed yields an empty batch, not an error.
func (b *BatchRunner) AnalyzeRecent(ctx context.Context, blogID string, count int) (*BatchResult, error) {
	posts, err := b.lister.ListRecent(ctx, blogID, count)
	if err != nil {
		return nil, err
	}

	batch := &BatchResult{
		BlogID:  blogID,
		Results: make([]*Result, 0, len(posts)),
		Failed:  make([]BatchError, 0),
	}
	if len(posts) == 0 {
		b.log.WithField("blog_id", blogID).Info("No recent posts to analyze")
		return batch, nil
	}

	progress := logger.NewProgressReporter(len(posts), "블로그 분석")
	for _, post := range posts {
		if err := b.limiter.Wait(ctx); err != nil {
			return batch, err
		}

		result, err := b.pipeline.AnalyzeURL(ctx, post.Link)
		if err != nil {
			b.log.WithError(err).WithField("url", post.Link).Warn("Post analysis failed, continuing batch")
			batch.Failed = append(batch.Failed, BatchError{
				URL:   post.Link,
				Title: post.Title,
				Error: err.Error(),
			})
			progress.Step()
			continue
		}

		batch.Results = append(batch.Results, result)
		progress.Step()
	}
	progress.Complete()

	return batch, nil
}
