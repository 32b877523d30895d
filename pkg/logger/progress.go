package logger

import (
	"fmt"
	"sync"
	"time"
)

// ProgressReporter reports batch progress (analyzed posts out of total)
// through the structured logger. Used by the batch runner, which analyzes
// posts one at a time, so updates are cheap and always reported.
type ProgressReporter struct {
	mu          sync.Mutex
	total       int
	current     int
	description string
	startTime   time.Time
	logger      *Logger
}

// NewProgressReporter creates a new progress reporter
func NewProgressReporter(total int, description string) *ProgressReporter {
	return &ProgressReporter{
		total:       total,
		description: description,
		startTime:   time.Now(),
		logger:      GetLogger().WithField("component", "progress"),
	}
}

// Step increments the progress counter by one and reports.
func (pr *ProgressReporter) Step() {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	pr.current++
	pr.report()
}

// Complete marks the progress as complete and reports final status
func (pr *ProgressReporter) Complete() {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	pr.current = pr.total
	pr.report()
}

// report logs the current progress (must be called with lock held)
func (pr *ProgressReporter) report() {
	elapsed := time.Since(pr.startTime)

	var eta string
	if pr.current > 0 && pr.current < pr.total {
		perItem := elapsed / time.Duration(pr.current)
		remaining := time.Duration(pr.total-pr.current) * perItem
		eta = fmt.Sprintf(" (ETA: %s)", remaining.Round(time.Second))
	}

	pr.logger.WithFields(map[string]interface{}{
		"current": pr.current,
		"total":   pr.total,
		"elapsed": elapsed.Round(time.Second).String(),
	}).Info(fmt.Sprintf("%s: %d/%d%s", pr.description, pr.current, pr.total, eta))
}

// Progress returns the current and total counts.
func (pr *ProgressReporter) Progress() (current, total int) {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return pr.current, pr.total
}
