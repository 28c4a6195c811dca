package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBatchSize is the number of documents checked concurrently.
	// Checks are CPU-bound and short, so a small pool is enough.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "factcheck"
)

// Config holds all configuration options for a check run.
// It is populated from CLI flags and the optional .factcheck file, then
// passed down explicitly rather than kept in global state.
type Config struct {
	// Verbose enables debug logging and per-statistic report lines.
	Verbose bool

	// BatchSize is the number of subjects checked concurrently.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, .factcheck is searched in the current directory and then in
	// the user's home directory.
	ConfigFilePath string

	// File holds the settings loaded from the configuration file.
	File *File

	// References are trusted document paths applied to every subject.
	References []string

	// Subjects are the document paths to check.
	Subjects []string

	// UseDemo checks the embedded demonstration documents instead of
	// Subjects and References.
	UseDemo bool

	// SelfCheck judges subjects with Information.IsAccurate only, without
	// references.
	SelfCheck bool

	// JSONReport enables JSON report output. Mutually exclusive with
	// MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output. Mutually exclusive with
	// JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// DBDir is the directory holding the verdict history database.
	// Defaults to the XDG data directory (~/.local/share/factcheck on Linux).
	DBDir string

	// SaveToDB indicates whether verdicts are stored in the history database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BatchSize: DefaultBatchSize,
		DBDir:     XDGDataDir(),
		SaveToDB:  true,
		File:      &File{Subjects: make(map[string]SubjectConfig)},
	}
}

// XDGDataDir returns the XDG data directory for factcheck.
// On Linux: ~/.local/share/factcheck
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for factcheck.
// On Linux: ~/.config/factcheck
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ReferencesFor returns the reference paths for a subject: the global
// references followed by those from the configuration file, without
// duplicates. Two paths naming the same file count as duplicates.
func (c *Config) ReferencesFor(subject string) []string {
	var fromFile []string
	if c.File != nil {
		fromFile = c.File.GetSubjectConfig(subject).References
	}

	seen := make(map[string]bool, len(c.References)+len(fromFile))
	out := make([]string, 0, len(c.References)+len(fromFile))
	for _, list := range [][]string{c.References, fromFile} {
		for _, ref := range list {
			key := ref
			if abs, err := filepath.Abs(ref); err == nil {
				key = abs
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, ref)
		}
	}
	return out
}

// SelfCheckFor reports whether a subject is judged without references.
func (c *Config) SelfCheckFor(subject string) bool {
	if c.SelfCheck {
		return true
	}
	if c.File == nil {
		return false
	}
	return c.File.GetSubjectConfig(subject).SelfCheck
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// The demo carries its own documents.
	if c.UseDemo {
		return nil
	}

	if len(c.Subjects) == 0 {
		return ErrNoSubject
	}

	for _, subject := range c.Subjects {
		if c.SelfCheckFor(subject) {
			continue
		}
		if len(c.ReferencesFor(subject)) == 0 {
			return fmt.Errorf("%w (subject %s)", ErrNoReference, subject)
		}
	}

	return nil
}
