package model

// Checkable is the capability shared by every value whose accuracy can be
// judged. T is the concrete type itself: trusted values are always
// compared against values of the same kind.
type Checkable[T any] interface {
	// IsAccurate judges the value without any external reference.
	IsAccurate() bool

	// IsAccurateWithSources judges the value relative to trusted values.
	// An error means no judgment could be made.
	IsAccurateWithSources(trusted []T) (bool, error)

	// AccuracyScore is reserved for a numeric score. No variant defines one
	// yet, so every implementation returns ErrNotImplemented.
	AccuracyScore() (uint32, error)
}

var (
	_ Checkable[Source]      = Source{}
	_ Checkable[Statistic]   = Statistic{}
	_ Checkable[Information] = Information{}
)
