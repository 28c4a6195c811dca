package model

import (
	"math"
	"strings"
)

// descriptionMajority is the share of the average description length that
// the number of shared description tokens must exceed before two differently
// worded statistics are compared by value.
const descriptionMajority float32 = 0.55

// Statistic is a single numeric claim together with the sources citing it.
type Statistic struct {
	// Sources lists where the claim comes from. It may be empty.
	Sources []Source `json:"sources" yaml:"sources"`

	// Description is the free-text description of what is measured.
	Description string `json:"description" yaml:"description"`

	// Value is the claimed number.
	Value int32 `json:"value" yaml:"value"`
}

// Equal reports whether two statistics describe the same claim.
//
// Identical description and value are always equal. Otherwise the
// whitespace-separated tokens of s.Description that occur anywhere in
// other.Description are counted. When that count exceeds 55% of the average
// description length (in bytes, rounded), the statistics are equal only if
// their values match. When it does not, s is equal to other if and only if
// every source of s is trusted, whatever other says.
//
// The relation is not symmetric: only the receiver's sources are consulted.
func (s Statistic) Equal(other Statistic) bool {
	if s.Description == other.Description && s.Value == other.Value {
		return true
	}

	if s.sharedTokens(other) > s.majorityThreshold(other) {
		return s.Value == other.Value
	}

	for _, src := range s.Sources {
		if !src.Trusted {
			return false
		}
	}
	return true
}

// sharedTokens counts the description tokens of s that appear as substrings
// of other's description. Repeated tokens are counted every time.
func (s Statistic) sharedTokens(other Statistic) int {
	count := 0
	for _, token := range strings.Fields(s.Description) {
		if strings.Contains(other.Description, token) {
			count++
		}
	}
	return count
}

// majorityThreshold returns round(0.55 * avg) where avg is the integer mean
// of both description lengths.
func (s Statistic) majorityThreshold(other Statistic) int {
	avg := (len(s.Description) + len(other.Description)) / 2
	return int(math.Round(float64(descriptionMajority * float32(avg))))
}

// IsAccurate reports whether every source of the statistic is accurate.
// A statistic without sources is accurate.
func (s Statistic) IsAccurate() bool {
	for _, src := range s.Sources {
		if !src.IsAccurate() {
			return false
		}
	}
	return true
}

// IsAccurateWithSources reports whether s is Equal to every trusted
// statistic. It stops at the first mismatch. An empty list is vacuously
// accurate.
func (s Statistic) IsAccurateWithSources(trusted []Statistic) (bool, error) {
	for _, t := range trusted {
		if !s.Equal(t) {
			return false, nil
		}
	}
	return true, nil
}

// AccuracyScore always returns ErrNotImplemented.
func (s Statistic) AccuracyScore() (uint32, error) {
	return 0, ErrNotImplemented
}

// UntrustedSources returns the sources of s that are not trusted.
func (s Statistic) UntrustedSources() []Source {
	var out []Source
	for _, src := range s.Sources {
		if !src.Trusted {
			out = append(out, src)
		}
	}
	return out
}
