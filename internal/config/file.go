package config

import (
	"path/filepath"
	"sort"
)

// SubjectConfig holds settings for checking one subject document.
type SubjectConfig struct {
	// References are trusted document paths the subject is checked against.
	References []string `yaml:"references,omitempty"`

	// SelfCheck judges the subject without references.
	SelfCheck bool `yaml:"selfCheck,omitempty"`
}

// File represents the structure of the .factcheck configuration file.
type File struct {
	// Subjects maps subject document paths to their settings.
	Subjects map[string]SubjectConfig `yaml:"subjects,omitempty"`

	// Defaults applies to every subject unless overridden.
	Defaults SubjectConfig `yaml:"defaults,omitempty"`

	// BatchSize overrides the default concurrency when the flag is not set.
	BatchSize int `yaml:"batchSize,omitempty"`
}

// GetSubjectConfig returns the configuration for a subject path, merged
// with the defaults. Subject references replace the default references.
func (cf *File) GetSubjectConfig(subject string) SubjectConfig {
	result := cf.Defaults

	if sc, ok := cf.lookupSubject(subject); ok {
		if len(sc.References) > 0 {
			result.References = sc.References
		}
		if sc.SelfCheck {
			result.SelfCheck = true
		}
	}

	return result
}

// lookupSubject finds a subject by its path as given, cleaned, or made
// absolute.
func (cf *File) lookupSubject(subject string) (SubjectConfig, bool) {
	if sc, ok := cf.Subjects[subject]; ok {
		return sc, true
	}
	if sc, ok := cf.Subjects[filepath.Clean(subject)]; ok {
		return sc, true
	}
	if abs, err := filepath.Abs(subject); err == nil {
		if sc, ok := cf.Subjects[abs]; ok {
			return sc, true
		}
	}
	return SubjectConfig{}, false
}

// SubjectPaths returns the subject paths listed in the file, sorted.
func (cf *File) SubjectPaths() []string {
	paths := make([]string, 0, len(cf.Subjects))
	for path := range cf.Subjects {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// ResolvePaths rewrites every relative document path in the file to be
// relative to baseDir, normally the directory holding the file.
func (cf *File) ResolvePaths(baseDir string) {
	resolve := func(path string) string {
		if filepath.IsAbs(path) {
			return filepath.Clean(path)
		}
		return filepath.Join(baseDir, path)
	}
	resolveAll := func(paths []string) []string {
		if len(paths) == 0 {
			return paths
		}
		out := make([]string, len(paths))
		for i, path := range paths {
			out[i] = resolve(path)
		}
		return out
	}

	cf.Defaults.References = resolveAll(cf.Defaults.References)

	subjects := make(map[string]SubjectConfig, len(cf.Subjects))
	for path, sc := range cf.Subjects {
		sc.References = resolveAll(sc.References)
		subjects[resolve(path)] = sc
	}
	cf.Subjects = subjects
}
