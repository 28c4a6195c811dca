package pipeline

import (
	"context"
	"errors"
	"slices"

	"github.com/nao1215/factcheck/internal/model"
)

// ErrNoSubject is returned by a step when the report carries no document.
var ErrNoSubject = errors.New("report has no subject document")

// SelfCheckStep records whether the subject is accurate on its own
// (self-trusted, or every statistic cites only trusted sources).
type SelfCheckStep struct {
	// Decide makes the self check the verdict of the report. It is used
	// when no references are checked.
	Decide bool
}

// NewSelfCheckStep creates a SelfCheckStep.
func NewSelfCheckStep(decide bool) *SelfCheckStep {
	return &SelfCheckStep{Decide: decide}
}

// Name implements Step.
func (s *SelfCheckStep) Name() string {
	return "self-check"
}

// Do implements Step.
func (s *SelfCheckStep) Do(_ context.Context, report *model.CheckReport) error {
	if report.Subject == nil {
		return ErrNoSubject
	}

	report.SelfAccurate = report.Subject.IsAccurate()
	if s.Decide {
		report.Verdict = model.VerdictOf(report.SelfAccurate)
	}
	return nil
}

// ReferenceCheckStep checks the subject against trusted reference documents
// and sets the verdict. When no reference shares a topic with the subject
// it returns model.ErrNoRelevantSources.
type ReferenceCheckStep struct {
	references []model.Information
}

// NewReferenceCheckStep creates a ReferenceCheckStep. The references are
// shared read-only between concurrent checks.
func NewReferenceCheckStep(references []model.Information) *ReferenceCheckStep {
	return &ReferenceCheckStep{references: references}
}

// Name implements Step.
func (s *ReferenceCheckStep) Name() string {
	return "reference-check"
}

// Do implements Step.
func (s *ReferenceCheckStep) Do(_ context.Context, report *model.CheckReport) error {
	if report.Subject == nil {
		return ErrNoSubject
	}

	report.RelevantReferences = referenceNames(report.Subject.RelevantReferences(s.references))

	ok, err := report.Subject.IsAccurateWithSources(s.references)
	if err != nil {
		return err
	}
	report.Verdict = model.VerdictOf(ok)
	return nil
}

// StatisticsStep fills in the per-statistic breakdown of the report.
// A statistic is matched when it is accurate against every relevant
// reference.
type StatisticsStep struct {
	references []model.Information
}

// NewStatisticsStep creates a StatisticsStep.
func NewStatisticsStep(references []model.Information) *StatisticsStep {
	return &StatisticsStep{references: references}
}

// Name implements Step.
func (s *StatisticsStep) Name() string {
	return "statistics"
}

// Do implements Step.
func (s *StatisticsStep) Do(_ context.Context, report *model.CheckReport) error {
	if report.Subject == nil {
		return ErrNoSubject
	}

	relevant := report.Subject.RelevantReferences(s.references)
	results := make([]model.StatisticResult, 0, len(report.Subject.Statistics))

	for _, stat := range report.Subject.Statistics {
		result := model.StatisticResult{
			Description:    stat.Description,
			Value:          stat.Value,
			SourcesTrusted: stat.IsAccurate(),
			Matched:        len(relevant) > 0,
			SourceDomains:  sourceDomains(stat.Sources),
		}
		for _, src := range stat.UntrustedSources() {
			result.UntrustedSources = append(result.UntrustedSources, src.Location)
		}

		for _, ref := range relevant {
			ok, err := stat.IsAccurateWithSources(ref.Statistics)
			if err != nil {
				return err
			}
			if !ok {
				result.Matched = false
				result.MismatchedReference = ref.WebsiteName
				break
			}
		}
		results = append(results, result)
	}

	report.Statistics = results
	return nil
}

func referenceNames(refs []model.Information) []string {
	if len(refs) == 0 {
		return nil
	}
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.WebsiteName)
	}
	return names
}

// sourceDomains returns the sorted, de-duplicated registrable domains of the
// given sources. Locations without a domain are skipped.
func sourceDomains(sources []model.Source) []string {
	var domains []string
	for _, src := range sources {
		if d := src.Domain(); d != "" {
			domains = append(domains, d)
		}
	}
	slices.Sort(domains)
	return slices.Compact(domains)
}

// DefaultPipelineConfig holds the settings used by DefaultPipeline.
type DefaultPipelineConfig struct {
	// SelfCheckOnly skips the reference checks and decides the verdict
	// from the self check.
	SelfCheckOnly bool
}

// DefaultPipelineOption configures DefaultPipeline.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithSelfCheckOnly makes the pipeline decide by the self check alone.
func WithSelfCheckOnly(selfOnly bool) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.SelfCheckOnly = selfOnly
	}
}

// DefaultPipeline creates the standard check pipeline: self check,
// reference check, then the per-statistic breakdown. The pipeline keeps
// going after a failed reference check so the breakdown is still filled in.
func DefaultPipeline(references []model.Information, pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	cfg := &DefaultPipelineConfig{}
	for _, opt := range configOpts {
		opt(cfg)
	}

	opts := append([]Option{WithContinueOnError(true)}, pipelineOpts...)
	p := New(opts...)

	if cfg.SelfCheckOnly {
		p.AddStep(NewSelfCheckStep(true))
	} else {
		p.AddSteps(
			NewSelfCheckStep(false),
			NewReferenceCheckStep(references),
			NewStatisticsStep(references),
		)
	}

	p.logger.Debug("pipeline built",
		"steps", p.StepNames(),
		"references", len(references),
	)
	return p
}
