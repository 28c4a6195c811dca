package model

import "slices"

// Information is everything a website publishes about a set of topics.
type Information struct {
	// WebsiteName names the publisher and is used in verdict output.
	WebsiteName string `json:"website_name" yaml:"website_name"`

	// IsTrusted marks the whole document as accepted without verification.
	IsTrusted bool `json:"is_trusted" yaml:"is_trusted"`

	// WebsiteTopics are the topic tags used to find relevant references.
	// Duplicates are allowed.
	WebsiteTopics []string `json:"website_topics" yaml:"website_topics"`

	// Statistics are the claims made by the document.
	Statistics []Statistic `json:"statistics" yaml:"statistics"`
}

// IsAccurate reports whether the document can be accepted on its own: it is
// either self-declared trusted or every statistic is accurate.
func (i Information) IsAccurate() bool {
	if i.IsTrusted {
		return true
	}

	for _, stat := range i.Statistics {
		if !stat.IsAccurate() {
			return false
		}
	}
	return true
}

// IsAccurateWithSources checks the document against trusted references.
//
// A self-trusted document is accurate whatever the references are. Otherwise
// every reference sharing a topic with i is relevant, and every statistic of
// i must be accurate against the full statistic list of each relevant
// reference. The first failing statistic returns false. If no reference is
// relevant, ErrNoRelevantSources is returned.
func (i Information) IsAccurateWithSources(trusted []Information) (bool, error) {
	if i.IsTrusted {
		return true, nil
	}

	found := false
	for _, ref := range trusted {
		if !i.RelevantTo(ref) {
			continue
		}
		found = true

		for _, stat := range i.Statistics {
			ok, err := stat.IsAccurateWithSources(ref.Statistics)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
	}

	if !found {
		return false, ErrNoRelevantSources
	}
	return true, nil
}

// AccuracyScore always returns ErrNotImplemented.
func (i Information) AccuracyScore() (uint32, error) {
	return 0, ErrNotImplemented
}

// RelevantTo reports whether i and other share at least one topic tag.
// Tags are compared exactly.
func (i Information) RelevantTo(other Information) bool {
	for _, topic := range i.WebsiteTopics {
		if slices.Contains(other.WebsiteTopics, topic) {
			return true
		}
	}
	return false
}

// RelevantReferences returns the references sharing a topic with i, in
// their original order.
func (i Information) RelevantReferences(trusted []Information) []Information {
	var out []Information
	for _, ref := range trusted {
		if i.RelevantTo(ref) {
			out = append(out, ref)
		}
	}
	return out
}
