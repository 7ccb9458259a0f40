package analyze

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/crinis/mindfula11y-sub001/internal/model"
)

// Batch audits multiple documents concurrently.
// Each document gets its own fresh Task so first-run flags and run tokens
// never leak between targets.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because errgroup handles the concurrency limit and context propagation
// correctly with much less code.
type Batch struct {
	// newTask creates a fresh Task for each document.
	newTask func() *Task

	// concurrency is the maximum number of concurrent audits.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *Batch) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent audits.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatch creates a Batch that builds a fresh Task per document via
// newTask.
func NewBatch(newTask func() *Task, opts ...BatchOption) *Batch {
	b := &Batch{
		newTask:     newTask,
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Process audits every document URL and calls the callback with each
// completed report and the document's index in the input slice. Failed
// audits still produce a report (with the failure recorded) so callers see
// every target exactly once. The callback runs on the goroutine that
// finished the audit and must be safe for concurrent use.
func (b *Batch) Process(ctx context.Context, documentURLs []string, callback func(report *model.AuditReport, index int)) error {
	b.logger.Info("starting batch audit",
		"total_documents", len(documentURLs),
		"concurrency", b.concurrency,
	)

	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, documentURL := range documentURLs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			task := b.newTask()
			result, err := task.Run(ctx, documentURL)
			if err != nil {
				b.logger.Warn("audit failed",
					"document", documentURL,
					"error", err,
				)
			}

			callback(model.NewAuditReport(documentURL, result, err), i)
			return nil
		})
	}

	err := g.Wait()

	b.logger.Info("batch audit complete",
		"total_documents", len(documentURLs),
		"elapsed", time.Since(startTime),
	)

	return err
}
