package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestNewConfig verifies the default values of a new Config.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default BatchSize is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 4 {
			t.Errorf("expected BatchSize to be 4, got %d", cfg.BatchSize)
		}
	})

	t.Run("saves to the XDG data directory by default", func(t *testing.T) {
		t.Parallel()
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB to be true")
		}
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir %q, got %q", XDGDataDir(), cfg.DBDir)
		}
	})

	t.Run("file has an initialized subjects map", func(t *testing.T) {
		t.Parallel()
		if cfg.File == nil || cfg.File.Subjects == nil {
			t.Error("expected initialized File.Subjects")
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.Subjects = []string{"blog.json"}
		cfg.References = []string{"gov.json"}
		return cfg
	}

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		if err := validConfig().Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("demo needs no documents", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.UseDemo = true
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("no subjects returns ErrNoSubject", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Subjects = nil
		if err := cfg.Validate(); !errors.Is(err, ErrNoSubject) {
			t.Errorf("expected ErrNoSubject, got %v", err)
		}
	})

	t.Run("no references returns ErrNoReference", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.References = nil
		err := cfg.Validate()
		if !errors.Is(err, ErrNoReference) {
			t.Fatalf("expected ErrNoReference, got %v", err)
		}
		if !strings.Contains(err.Error(), "blog.json") {
			t.Errorf("expected error to name the subject, got %q", err.Error())
		}
	})

	t.Run("self check needs no references", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.References = nil
		cfg.SelfCheck = true
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("references from the config file are enough", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.References = nil
		cfg.File = &File{Defaults: SubjectConfig{References: []string{"gov.json"}}}
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("zero batch size returns ErrInvalidBatchSize", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.BatchSize = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidBatchSize) {
			t.Errorf("expected ErrInvalidBatchSize, got %v", err)
		}
	})

	t.Run("json and markdown both enabled returns ErrConflictingReportFormats", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.JSONReport = true
		cfg.MarkdownReport = true
		if err := cfg.Validate(); !errors.Is(err, ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})
}

// TestConfigReferencesFor tests merging of flag and file references.
func TestConfigReferencesFor(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.References = []string{"gov.json", "stats.json"}
	cfg.File = &File{
		Defaults: SubjectConfig{References: []string{"default.json"}},
		Subjects: map[string]SubjectConfig{
			"blog.json": {References: []string{"stats.json", "census.json"}},
		},
	}

	t.Run("subject-specific references replace defaults", func(t *testing.T) {
		t.Parallel()
		got := cfg.ReferencesFor("blog.json")
		want := []string{"gov.json", "stats.json", "census.json"}
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("unknown subject uses defaults", func(t *testing.T) {
		t.Parallel()
		got := cfg.ReferencesFor("post.json")
		want := []string{"gov.json", "stats.json", "default.json"}
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("same file under two spellings is listed once", func(t *testing.T) {
		t.Parallel()
		abs, err := filepath.Abs("gov.json")
		if err != nil {
			t.Fatalf("failed to resolve path: %v", err)
		}
		c := &Config{
			References: []string{"gov.json"},
			File:       &File{Defaults: SubjectConfig{References: []string{abs, "./gov.json"}}},
		}
		if got := c.ReferencesFor("x.json"); len(got) != 1 || got[0] != "gov.json" {
			t.Errorf("expected [gov.json], got %v", got)
		}
	})

	t.Run("nil file uses flags only", func(t *testing.T) {
		t.Parallel()
		c := &Config{References: []string{"gov.json"}}
		if got := c.ReferencesFor("x.json"); len(got) != 1 {
			t.Errorf("expected 1 reference, got %v", got)
		}
	})
}

// TestFileGetSubjectConfig tests the GetSubjectConfig method.
func TestFileGetSubjectConfig(t *testing.T) {
	t.Parallel()

	file := &File{
		Defaults: SubjectConfig{References: []string{"gov.json"}},
		Subjects: map[string]SubjectConfig{
			"post.json": {SelfCheck: true},
			"blog.json": {References: []string{"stats.json"}},
		},
	}

	t.Run("returns defaults when subject not found", func(t *testing.T) {
		t.Parallel()
		sc := file.GetSubjectConfig("unknown.json")
		if len(sc.References) != 1 || sc.References[0] != "gov.json" {
			t.Errorf("unexpected references %v", sc.References)
		}
		if sc.SelfCheck {
			t.Error("expected SelfCheck false")
		}
	})

	t.Run("keeps default references when subject has none", func(t *testing.T) {
		t.Parallel()
		sc := file.GetSubjectConfig("post.json")
		if !sc.SelfCheck {
			t.Error("expected SelfCheck true")
		}
		if len(sc.References) != 1 || sc.References[0] != "gov.json" {
			t.Errorf("unexpected references %v", sc.References)
		}
	})

	t.Run("overrides references", func(t *testing.T) {
		t.Parallel()
		sc := file.GetSubjectConfig("blog.json")
		if len(sc.References) != 1 || sc.References[0] != "stats.json" {
			t.Errorf("unexpected references %v", sc.References)
		}
	})

	t.Run("subject paths are sorted", func(t *testing.T) {
		t.Parallel()
		paths := file.SubjectPaths()
		if len(paths) != 2 || paths[0] != "blog.json" || paths[1] != "post.json" {
			t.Errorf("unexpected paths %v", paths)
		}
	})
}

func TestFileResolvePaths(t *testing.T) {
	t.Parallel()

	base := filepath.Join("projects", "site")
	abs := filepath.Join(t.TempDir(), "gov.json")
	file := &File{
		Defaults: SubjectConfig{References: []string{"gov.json", abs}},
		Subjects: map[string]SubjectConfig{
			"posts/blog.json": {References: []string{"../stats.json"}},
			"post.json":       {SelfCheck: true},
		},
	}
	file.ResolvePaths(base)

	t.Run("defaults are resolved against the base", func(t *testing.T) {
		t.Parallel()
		want := []string{filepath.Join(base, "gov.json"), abs}
		if len(file.Defaults.References) != 2 || file.Defaults.References[0] != want[0] || file.Defaults.References[1] != want[1] {
			t.Errorf("got %v, want %v", file.Defaults.References, want)
		}
	})

	t.Run("subjects and their references are resolved", func(t *testing.T) {
		t.Parallel()
		sc := file.GetSubjectConfig(filepath.Join(base, "posts", "blog.json"))
		want := filepath.Join("projects", "stats.json")
		if len(sc.References) != 1 || sc.References[0] != want {
			t.Errorf("got %v, want [%s]", sc.References, want)
		}
		if !file.GetSubjectConfig(filepath.Join(base, "post.json")).SelfCheck {
			t.Error("expected resolved post.json to keep selfCheck")
		}
	})

	t.Run("lookup cleans the subject path", func(t *testing.T) {
		t.Parallel()
		if !file.GetSubjectConfig("./" + filepath.Join(base, "post.json")).SelfCheck {
			t.Error("expected lookup of an unclean path to match")
		}
	})
}

// TestLoadConfigFile tests loading the YAML configuration file.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads valid config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".factcheck")
		content := `batchSize: 2
defaults:
  references:
    - gov.json
subjects:
  blog.json:
    references: [stats.json]
  post.json:
    selfCheck: true
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.BatchSize != 2 {
			t.Errorf("expected batch size 2, got %d", cf.BatchSize)
		}
		if len(cf.Defaults.References) != 1 {
			t.Errorf("unexpected default references %v", cf.Defaults.References)
		}
		if !cf.Subjects["post.json"].SelfCheck {
			t.Error("expected post.json selfCheck")
		}
		if cf.Subjects["blog.json"].References[0] != "stats.json" {
			t.Errorf("unexpected blog.json references %v", cf.Subjects["blog.json"].References)
		}
	})

	t.Run("returns ErrConfigNotFound for missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()
		configPath := filepath.Join(t.TempDir(), ".factcheck")
		if err := os.WriteFile(configPath, []byte("subjects: [unclosed"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("initializes nil Subjects map", func(t *testing.T) {
		t.Parallel()
		configPath := filepath.Join(t.TempDir(), ".factcheck")
		if err := os.WriteFile(configPath, []byte("batchSize: 3\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.Subjects == nil {
			t.Error("expected Subjects map to be initialized")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()
		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("defaults: {}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()
		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if !strings.HasSuffix(XDGDataDir(), AppName) {
		t.Errorf("expected data dir to end with %q, got %q", AppName, XDGDataDir())
	}
	if !strings.HasSuffix(XDGConfigDir(), AppName) {
		t.Errorf("expected config dir to end with %q, got %q", AppName, XDGConfigDir())
	}
}
