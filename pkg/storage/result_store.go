package storage

import (
	"context"
	"fmt"
	"time"

	"blogrank-go/pkg/analyzer"
	"blogrank-go/pkg/logger"
)

// resultsKey is the single namespaced key the ordered result list
// lives under.
const resultsKey = "blogrank:results"

// SchemaVersion tags persisted records so future field changes can be
// migrated instead of silently misread.
const SchemaVersion = 1

// AnalysisRecord is one persisted analysis result.
type AnalysisRecord struct {
	SchemaVersion int              `json:"schema_version"`
	SavedAt       time.Time        `json:"saved_at"`
	Result        *analyzer.Result `json:"result"`
}

// ResultStore keeps an append-only, ordered list of analysis results
// under a single key. Oldest first.
type ResultStore struct {
	storage Storage
	log     *logger.Logger
}

// NewResultStore creates a result store over any Storage.
func NewResultStore(storage Storage) *ResultStore {
	return &ResultStore{
		storage: storage,
		log:     logger.GetLogger().WithField("component", "result_store"),
	}
}

// Append adds a result to the stored list.
func (rs *ResultStore) Append(ctx context.Context, result *analyzer.Result) error {
	if result == nil {
		return fmt.Errorf("nil result")
	}

	records, err := rs.LoadAll(ctx)
	if err != nil {
		return err
	}

	records = append(records, AnalysisRecord{
		SchemaVersion: SchemaVersion,
		SavedAt:       time.Now(),
		Result:        result,
	})

	if err := rs.storage.Save(ctx, resultsKey, records); err != nil {
		return fmt.Errorf("failed to persist results: %w", err)
	}

	rs.log.WithFields(map[string]interface{}{
		"result_id": result.ID,
		"total":     len(records),
	}).Debug("Analysis result appended")

	return nil
}

// LoadAll returns every stored record in insertion order. A store
// that has never been written reads as empty.
func (rs *ResultStore) LoadAll(ctx context.Context) ([]AnalysisRecord, error) {
	exists, err := rs.storage.Exists(ctx, resultsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check result store: %w", err)
	}
	if !exists {
		return []AnalysisRecord{}, nil
	}

	var records []AnalysisRecord
	if err := rs.storage.Load(ctx, resultsKey, &records); err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	return records, nil
}

// Clear removes every stored record.
func (rs *ResultStore) Clear(ctx context.Context) error {
	if err := rs.storage.Delete(ctx, resultsKey); err != nil {
		return fmt.Errorf("failed to clear results: %w", err)
	}
	rs.log.Info("Result store cleared")
	return nil
}
