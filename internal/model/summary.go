package model

import "time"

// Summary counts verdicts across a batch of check reports.
type Summary struct {
	Total             int       `json:"total"`
	Accurate          int       `json:"accurate"`
	NotAccurate       int       `json:"not_accurate"`
	NoRelevantSources int       `json:"no_relevant_sources"`
	Errors            int       `json:"errors"`
	DateChecked       time.Time `json:"date_checked"`
}

// NewSummary builds a summary from reports. Nil reports are skipped.
func NewSummary(reports []*CheckReport) *Summary {
	s := &Summary{DateChecked: time.Now()}
	for _, r := range reports {
		if r == nil {
			continue
		}
		s.Total++
		switch r.Verdict {
		case VerdictAccurate:
			s.Accurate++
		case VerdictNotAccurate:
			s.NotAccurate++
		case VerdictNoRelevantSources:
			s.NoRelevantSources++
		case VerdictError, VerdictUnknown:
			s.Errors++
		}
	}
	return s
}

// Count returns the number of reports with the given verdict.
// Unknown verdicts are counted as errors.
func (s *Summary) Count(v Verdict) int {
	switch v {
	case VerdictAccurate:
		return s.Accurate
	case VerdictNotAccurate:
		return s.NotAccurate
	case VerdictNoRelevantSources:
		return s.NoRelevantSources
	case VerdictError, VerdictUnknown:
		return s.Errors
	default:
		return 0
	}
}

// AllConclusive reports whether every report reached a yes/no verdict.
func (s *Summary) AllConclusive() bool {
	return s.Accurate+s.NotAccurate == s.Total
}
