package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/factcheck/internal/model"
)

// createTestReport creates a checked report with sample data for testing.
func createTestReport(verdict model.Verdict) *model.CheckReport {
	report := model.NewCheckReport(&model.Information{
		WebsiteName:   "Facebook post",
		WebsiteTopics: []string{"employment", "labor market"},
	})
	report.Verdict = verdict
	report.SelfAccurate = true
	report.RelevantReferences = []string{"U.S. Bureau of Labor Statistics"}
	report.Statistics = []model.StatisticResult{{
		Description:    "national unemployment rate in percent",
		Value:          4,
		SourcesTrusted: true,
		Matched:        verdict == model.VerdictAccurate,
		SourceDomains:  []string{"bls.gov"},
	}}
	if verdict == model.VerdictNotAccurate {
		report.Statistics[0].MismatchedReference = "U.S. Bureau of Labor Statistics"
	}
	report.PerformedSteps = []string{"self-check", "reference-check", "statistics"}
	return report
}

func createNoSourcesReport() *model.CheckReport {
	report := model.NewCheckReport(&model.Information{
		WebsiteName:   "recipe blog",
		WebsiteTopics: []string{"cooking"},
	})
	report.RecordError(model.ErrNoRelevantSources)
	return report
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		report *model.CheckReport
		want   string
	}{
		{
			name:   "accurate",
			report: createTestReport(model.VerdictAccurate),
			want:   "The website Facebook post is accurate\n",
		},
		{
			name:   "not accurate",
			report: createTestReport(model.VerdictNotAccurate),
			want:   "The website Facebook post is not accurate\n",
		},
		{
			name:   "no relevant sources",
			report: createNoSourcesReport(),
			want:   "The website recipe blog could not be checked: Error no relevant sources\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			n, err := NewSimpleWriter(&buf).Write(tt.report)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if n != len(tt.want) {
				t.Errorf("expected %d bytes written, got %d", len(tt.want), n)
			}
		})
	}

	t.Run("verbose mode includes details", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(createTestReport(model.VerdictNotAccurate))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"Topics: Employment, Labor Market",
			"Relevant references: U.S. Bureau of Labor Statistics",
			"national unemployment rate in percent = 4",
			"differs from U.S. Bureau of Labor Statistics",
			"trusted sources: bls.gov",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("verbose mode lists untrusted sources", func(t *testing.T) {
		t.Parallel()

		r := createTestReport(model.VerdictNotAccurate)
		r.Statistics[0].SourcesTrusted = false
		r.Statistics[0].UntrustedSources = []string{"https://blog.example.com/post"}

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "    untrusted: https://blog.example.com/post\n") {
			t.Errorf("expected untrusted source line, got:\n%s", buf.String())
		}
	})

	t.Run("writes summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		summary := model.NewSummary([]*model.CheckReport{
			createTestReport(model.VerdictAccurate),
			createTestReport(model.VerdictNotAccurate),
			createNoSourcesReport(),
		})
		if _, err := NewSimpleWriter(&buf).WriteSummary(summary); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "Checked 3 website(s): 1 accurate, 1 not accurate, 1 without relevant sources, 0 failed\n"
		if buf.String() != want {
			t.Errorf("got %q, want %q", buf.String(), want)
		}
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("outputs valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createNoSourcesReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded["website_name"] != "recipe blog" {
			t.Errorf("unexpected website_name %v", decoded["website_name"])
		}
		if decoded["verdict"] != "no_relevant_sources" {
			t.Errorf("unexpected verdict %v", decoded["verdict"])
		}
		if decoded["error"] != "Error no relevant sources" {
			t.Errorf("unexpected error field %v", decoded["error"])
		}
	})

	t.Run("compact output by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport(model.VerdictAccurate)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Error("expected a single line of JSON")
		}
	})

	t.Run("pretty print with indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestReport(model.VerdictAccurate)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"website_name\"") {
			t.Errorf("expected indented output, got:\n%s", buf.String())
		}
	})

	t.Run("uses custom prefix and indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithIndent(">", "\t")).Write(createTestReport(model.VerdictAccurate)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), ">\t\"website_name\"") {
			t.Errorf("expected custom indentation, got:\n%s", buf.String())
		}
	})

	t.Run("writes batch with version and summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		batch := NewJSONBatch([]*model.CheckReport{
			createTestReport(model.VerdictAccurate),
			createNoSourcesReport(),
		}, "v1.2.3")
		if _, err := NewJSONWriter(&buf).WriteBatch(batch); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded JSONBatch
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Version != "v1.2.3" {
			t.Errorf("unexpected version %q", decoded.Version)
		}
		if len(decoded.Reports) != 2 {
			t.Fatalf("expected 2 reports, got %d", len(decoded.Reports))
		}
		if decoded.Reports[1].Verdict != model.VerdictNoRelevantSources {
			t.Errorf("unexpected verdict %s", decoded.Reports[1].Verdict)
		}
		if decoded.Summary.Total != 2 || decoded.Summary.Accurate != 1 {
			t.Errorf("unexpected summary %+v", decoded.Summary)
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report section", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport(model.VerdictNotAccurate)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"## Facebook post",
			"Employment, Labor Market",
			"[!CAUTION]",
			"The website Facebook post is not accurate.",
			"### Statistics",
			"national unemployment rate in percent",
			"bls.gov",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("uses tip for accurate report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport(model.VerdictAccurate)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "[!TIP]") {
			t.Error("expected tip alert")
		}
	})

	t.Run("omits statistics without results", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createNoSourcesReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "### Statistics") {
			t.Error("expected no statistics section")
		}
		if !strings.Contains(buf.String(), "[!WARNING]") {
			t.Error("expected warning alert")
		}
	})

	t.Run("summary includes pie chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		summary := model.NewSummary([]*model.CheckReport{
			createTestReport(model.VerdictAccurate),
			createTestReport(model.VerdictNotAccurate),
		})
		if _, err := NewMarkdownWriter(&buf).WriteSummary(summary); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"# Fact Check Summary", "```mermaid", "pie", "Accurate"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("empty summary has no chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteSummary(model.NewSummary(nil)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "```mermaid") {
			t.Error("expected no pie chart for an empty summary")
		}
	})
}

type failingWriter struct{}

func (failingWriter) Write(*model.CheckReport) (int, error)   { return 0, errors.New("write failed") }
func (failingWriter) WriteSummary(*model.Summary) (int, error) { return 0, errors.New("write failed") }

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var buf1, buf2 bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(&buf1), NewJSONWriter(&buf2))

		n, err := mw.Write(createTestReport(model.VerdictAccurate))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf1.Len() == 0 || buf2.Len() == 0 {
			t.Error("expected both writers to receive output")
		}
		if n != buf1.Len()+buf2.Len() {
			t.Errorf("expected total %d bytes, got %d", buf1.Len()+buf2.Len(), n)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := NewMultiWriter(failingWriter{}, NewSimpleWriter(&buf))

		if _, err := mw.WriteSummary(model.NewSummary(nil)); err == nil {
			t.Error("expected error")
		}
		if buf.Len() != 0 {
			t.Error("expected later writers to be skipped")
		}
	})

	t.Run("handles empty writers list", func(t *testing.T) {
		t.Parallel()

		n, err := NewMultiWriter().Write(createTestReport(model.VerdictAccurate))
		if err != nil || n != 0 {
			t.Errorf("expected no output and no error, got %d, %v", n, err)
		}
	})
}

func TestTitleTopics(t *testing.T) {
	t.Parallel()

	got := titleTopics([]string{"economy", "labor market", "social media"})
	want := []string{"Economy", "Labor Market", "Social Media"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("titleTopics[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
