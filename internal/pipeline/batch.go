package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nao1215/factcheck/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of subjects checked at once when no
// limit is configured.
const DefaultConcurrency = 4

// PipelineFactory creates the pipeline for one subject. index is the
// subject's position in the batch.
type PipelineFactory func(subject *model.Information, index int) *Pipeline

// BatchProcessor checks multiple subjects concurrently.
type BatchProcessor struct {
	// pipelineFactory creates a fresh pipeline per subject.
	pipelineFactory PipelineFactory

	// concurrency is the maximum number of concurrent checks.
	concurrency int

	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent checks.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory PipelineFactory, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch checks every subject and returns the reports in input order.
//
// A failed check does not stop the others; its error is kept in its report.
// The returned error is non-nil only when ctx is cancelled, in which case
// subjects that never started have a nil report.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, subjects []model.Information) ([]*model.CheckReport, error) {
	bp.logger.Debug("starting batch",
		"subjects", len(subjects),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	var mu sync.Mutex
	results := make([]*model.CheckReport, len(subjects))
	err := bp.ProcessBatchWithCallback(ctx, subjects, func(report *model.CheckReport, index int) {
		mu.Lock()
		results[index] = report
		mu.Unlock()
	})

	bp.logger.Debug("batch complete",
		"subjects", len(subjects),
		"elapsed", time.Since(startTime),
	)
	return results, err
}

// ProcessBatchWithCallback checks every subject and calls callback as each
// check completes. callback runs on the worker goroutine and must be safe
// for concurrent use.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	subjects []model.Information,
	callback func(report *model.CheckReport, index int),
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i := range subjects {
		subject := &subjects[i]
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			callback(bp.check(ctx, subject, i), i)
			return nil
		})
	}
	return g.Wait()
}

func (bp *BatchProcessor) check(ctx context.Context, subject *model.Information, index int) *model.CheckReport {
	report := model.NewCheckReport(subject)

	if err := bp.pipelineFactory(subject, index).Execute(ctx, report); err != nil {
		bp.logger.Warn("check failed",
			"website", subject.WebsiteName,
			"error", err,
		)
		return report
	}

	bp.logger.Debug("check completed",
		"website", subject.WebsiteName,
		"verdict", report.Verdict.String(),
	)
	return report
}
