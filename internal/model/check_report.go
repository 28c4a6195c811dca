package model

import (
	"errors"
	"time"
)

// CheckReport is the result of checking one subject document.
// It is filled in step by step by the check pipeline.
type CheckReport struct {
	// WebsiteName is the subject's website name.
	WebsiteName string `json:"website_name"`

	// Topics are the subject's topic tags.
	Topics []string `json:"website_topics,omitempty"`

	// Trusted is the subject's self-declared trust flag.
	Trusted bool `json:"is_trusted"`

	// DateChecked is when the check started.
	DateChecked time.Time `json:"date_checked"`

	// Verdict is the outcome of the reference check.
	Verdict Verdict `json:"verdict"`

	// SelfAccurate is the result of Information.IsAccurate.
	SelfAccurate bool `json:"self_accurate"`

	// RelevantReferences names the references that share a topic with the
	// subject.
	RelevantReferences []string `json:"relevant_references,omitempty"`

	// Statistics holds per-statistic results.
	Statistics []StatisticResult `json:"statistics,omitempty"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error is the last step error. Not serialized; see ErrorMessage.
	Error error `json:"-"`

	// ErrorMessage is the text of Error.
	ErrorMessage string `json:"error,omitempty"`

	// Subject is the checked document.
	Subject *Information `json:"-"`
}

// StatisticResult describes how one statistic of the subject fared.
type StatisticResult struct {
	Description string `json:"description"`
	Value       int32  `json:"value"`

	// SourcesTrusted is the result of Statistic.IsAccurate.
	SourcesTrusted bool `json:"sources_trusted"`

	// Matched is true when the statistic is accurate against every relevant
	// reference.
	Matched bool `json:"matched"`

	// MismatchedReference names the first reference it failed against.
	MismatchedReference string `json:"mismatched_reference,omitempty"`

	// SourceDomains lists the registrable domains of the cited sources.
	SourceDomains []string `json:"source_domains,omitempty"`

	// UntrustedSources lists the locations of sources that are not trusted.
	UntrustedSources []string `json:"untrusted_sources,omitempty"`
}

// NewCheckReport creates an empty report for the given subject.
func NewCheckReport(subject *Information) *CheckReport {
	r := &CheckReport{
		DateChecked: time.Now(),
		Subject:     subject,
	}
	if subject != nil {
		r.WebsiteName = subject.WebsiteName
		r.Topics = subject.WebsiteTopics
		r.Trusted = subject.IsTrusted
	}
	return r
}

// Accurate reports whether the subject passed the reference check.
func (r *CheckReport) Accurate() bool {
	return r.Verdict == VerdictAccurate
}

// RecordError stores err in the report. ErrNoRelevantSources also sets the
// matching verdict; any other error sets VerdictError unless a verdict was
// already reached.
func (r *CheckReport) RecordError(err error) {
	if err == nil {
		return
	}
	r.Error = err
	r.ErrorMessage = err.Error()

	switch {
	case errors.Is(err, ErrNoRelevantSources):
		r.Verdict = VerdictNoRelevantSources
	case !r.Verdict.Conclusive():
		r.Verdict = VerdictError
	}
}
