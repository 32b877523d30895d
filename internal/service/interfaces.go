package service

import (
	"context"

	"blogrank-go/pkg/analyzer"
	"blogrank-go/pkg/storage"
)

// AnalyzerService runs keyword-rank analyses and persists their
// results.
type AnalyzerService interface {
	// AnalyzePost analyzes one post by URL.
	AnalyzePost(ctx context.Context, postURL string) (*analyzer.Result, error)
	// AnalyzeRecent analyzes a blog's recent posts sequentially.
	AnalyzeRecent(ctx context.Context, blogID string, count int) (*analyzer.BatchResult, error)
}

// ResultService exposes stored analysis results and the dashboard
// counters derived from them.
type ResultService interface {
	List(ctx context.Context) ([]storage.AnalysisRecord, error)
	Summary(ctx context.Context) (*Summary, error)
	Clear(ctx context.Context) error
}

// Summary is the dashboard counter block, derived from stored records
// on every read and never persisted.
type Summary struct {
	TotalAnalyzed int            `json:"total_analyzed"`
	ExposedCount  int            `json:"exposed_count"`
	Grades        map[string]int `json:"grades"`
}
