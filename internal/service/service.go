package service

import (
	"context"
	"time"

	"blogrank-go/internal/config"
	"blogrank-go/pkg/analyzer"
	"blogrank-go/pkg/extractor"
	"blogrank-go/pkg/fetcher"
	"blogrank-go/pkg/logger"
	"blogrank-go/pkg/search"
	"blogrank-go/pkg/sheet"
	"blogrank-go/pkg/storage"
	"blogrank-go/pkg/volume"
)

// Service wires the pipeline, persistence and the remote sheet sink.
// It implements AnalyzerService and ResultService.
type Service struct {
	pipeline *analyzer.Pipeline
	runner   *analyzer.BatchRunner
	store    *storage.ResultStore
	sink     sheet.RecordSink
	log      *logger.Logger
}

// New builds the full service from resolved configuration. The config
// is accepted as a value object; the service never reads config
// sources itself.
func New(cfg *config.Config) (*Service, error) {
	store, err := newResultStore(cfg)
	if err != nil {
		return nil, err
	}

	var sink sheet.RecordSink = sheet.NoopSink{}
	if cfg.Sheet.WebhookURL != "" {
		sink = sheet.NewWebhookSink(cfg.Sheet.WebhookURL)
	}

	var volumes volume.Provider
	if cfg.SearchAd.Complete() {
		volumes = volume.NewSearchAdClient(cfg.SearchAd)
	}

	blogFetcher := fetcher.NewBlogFetcher()
	pipeline := analyzer.NewPipeline(
		extractor.NewTextExtractor(),
		search.NewRankProber(search.NewNaverClient(cfg.Search)),
		volumes,
		blogFetcher,
	)

	svc := &Service{
		pipeline: pipeline,
		store:    store,
		sink:     sink,
		log:      logger.GetLogger().WithField("component", "service"),
	}

	// Progress events go to the structured log and, best-effort, to
	// the remote sheet.
	pipeline.SetProgressSink(func(e analyzer.Event) {
		svc.log.WithField("step", string(e.Step)).Info(e.Message)
		svc.sink.AppendLog(e.Message)
	})

	interval := time.Duration(cfg.Analyzer.BatchIntervalMs) * time.Millisecond
	svc.runner = analyzer.NewBatchRunnerWithInterval(fetcher.NewRSSLister(), pipeline, interval)

	return svc, nil
}

func newResultStore(cfg *config.Config) (*storage.ResultStore, error) {
	fileStorage, err := storage.NewFileStorage(cfg.Storage)
	if err != nil {
		// Fall back to memory so analyses still run; results just
		// will not survive a restart.
		logger.WithError(err).Warn("File storage unavailable, falling back to memory")
		return storage.NewResultStore(storage.NewMemoryStorage()), nil
	}
	return storage.NewResultStore(fileStorage), nil
}

// AnalyzePost analyzes a single post and persists the result.
// Persistence failures are logged and do not fail the analysis.
func (s *Service) AnalyzePost(ctx context.Context, postURL string) (*analyzer.Result, error) {
	result, err := s.pipeline.AnalyzeURL(ctx, postURL)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, result)
	return result, nil
}

// AnalyzeRecent analyzes a blog's recent posts and persists each
// successful result.
func (s *Service) AnalyzeRecent(ctx context.Context, blogID string, count int) (*analyzer.BatchResult, error) {
	batch, err := s.runner.AnalyzeRecent(ctx, blogID, count)
	if err != nil {
		return nil, err
	}
	for _, result := range batch.Results {
		s.persist(ctx, result)
	}
	return batch, nil
}

func (s *Service) persist(ctx context.Context, result *analyzer.Result) {
	if err := s.store.Append(ctx, result); err != nil {
		s.log.WithError(err).WithField("result_id", result.ID).Warn("Failed to persist result")
	}
	s.sink.AppendResult(result)
}

func (s *Service) List(ctx context.Context) ([]storage.AnalysisRecord, error) {
	return s.store.LoadAll(ctx)
}

// Summary derives the dashboard counters from stored records.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Grades: make(map[string]int)}
	for _, rec := range records {
		if rec.Result == nil {
			continue
		}
		summary.TotalAnalyzed++
		if rec.Result.BestRank != nil {
			summary.ExposedCount++
		}
		summary.Grades[string(rec.Result.Grade)]++
	}
	return summary, nil
}

func (s *Service) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Close drains the remote sheet queue. Safe to call once at shutdown.
func (s *Service) Close() {
	if closer, ok := s.sink.(interface{ Close() }); ok {
		closer.Close()
	}
}
