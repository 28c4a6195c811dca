package model

import "fmt"

// Verdict is the outcome of checking one document against its references.
type Verdict int

const (
	// VerdictUnknown means the document has not been judged yet.
	VerdictUnknown Verdict = iota

	// VerdictAccurate means the document passed the check.
	VerdictAccurate

	// VerdictNotAccurate means at least one statistic failed the check.
	VerdictNotAccurate

	// VerdictNoRelevantSources means no reference shared a topic with the
	// document, so no judgment could be made.
	VerdictNoRelevantSources

	// VerdictError means the check failed for another reason.
	VerdictError
)

// verdictNames maps verdicts to their serialized form.
var verdictNames = map[Verdict]string{
	VerdictUnknown:           "unknown",
	VerdictAccurate:          "accurate",
	VerdictNotAccurate:       "not_accurate",
	VerdictNoRelevantSources: "no_relevant_sources",
	VerdictError:             "error",
}

// String returns the serialized name of the verdict.
func (v Verdict) String() string {
	if name, ok := verdictNames[v]; ok {
		return name
	}
	return "unknown"
}

// Label returns the verdict as it appears in a sentence about a website.
func (v Verdict) Label() string {
	switch v {
	case VerdictAccurate:
		return "is accurate"
	case VerdictNotAccurate:
		return "is not accurate"
	case VerdictNoRelevantSources:
		return "could not be checked"
	case VerdictError:
		return "failed to check"
	default:
		return "has not been checked"
	}
}

// Conclusive reports whether the verdict is a yes/no judgment.
func (v Verdict) Conclusive() bool {
	return v == VerdictAccurate || v == VerdictNotAccurate
}

// VerdictOf converts a boolean accuracy result into a verdict.
func VerdictOf(accurate bool) Verdict {
	if accurate {
		return VerdictAccurate
	}
	return VerdictNotAccurate
}

// ParseVerdict parses the serialized name of a verdict.
func ParseVerdict(s string) (Verdict, error) {
	for v, name := range verdictNames {
		if name == s {
			return v, nil
		}
	}
	return VerdictUnknown, fmt.Errorf("unknown verdict %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Verdict) UnmarshalText(text []byte) error {
	parsed, err := ParseVerdict(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
