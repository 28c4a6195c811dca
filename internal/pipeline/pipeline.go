package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/factcheck/internal/model"
)

// Step is one stage of a check.
type Step interface {
	// Do runs the step against report. An error is recorded in the report
	// by the pipeline.
	Do(ctx context.Context, report *model.CheckReport) error

	// Name returns the step's name for logging.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger

	// continueOnError keeps running later steps after one fails.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to keep executing steps after
// one fails. The failure is still recorded in the report.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in order.
//
// Cancellation is checked before each step. The first step error is
// returned unless continueOnError is set, in which case nil is returned and
// the error is left in the report.
func (p *Pipeline) Execute(ctx context.Context, report *model.CheckReport) error {
	p.logger.Debug("executing pipeline",
		"website", report.WebsiteName,
		"steps", p.StepCount(),
	)

	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			report.RecordError(ctx.Err())
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"website", report.WebsiteName,
		)

		if err := step.Do(ctx, report); err != nil {
			p.logger.Warn("step failed",
				"step", step.Name(),
				"website", report.WebsiteName,
				"error", err,
			)
			report.RecordError(err)
			if !p.continueOnError {
				report.PerformedSteps = append(report.PerformedSteps, step.Name())
				return err
			}
		}

		report.PerformedSteps = append(report.PerformedSteps, step.Name())
	}
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
