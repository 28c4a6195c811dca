package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/factcheck/internal/model"
)

// SimpleWriter prints one verdict line per website, e.g.
//
//	The website Facebook post is accurate
//
// In verbose mode the topics, relevant references and per-statistic results
// follow, indented.
type SimpleWriter struct {
	baseWriter

	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables per-statistic output.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the verdict line for the report.
func (w *SimpleWriter) Write(report *model.CheckReport) (int, error) {
	var sb strings.Builder
	sb.WriteString(verdictLine(report))
	sb.WriteString("\n")

	if w.verbose {
		w.writeDetails(&sb, report)
	}
	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeDetails(sb *strings.Builder, report *model.CheckReport) {
	if len(report.Topics) > 0 {
		fmt.Fprintf(sb, "  Topics: %s\n", strings.Join(titleTopics(report.Topics), ", "))
	}
	if report.Trusted {
		sb.WriteString("  Self-declared trusted\n")
	}
	if len(report.RelevantReferences) > 0 {
		fmt.Fprintf(sb, "  Relevant references: %s\n", strings.Join(report.RelevantReferences, ", "))
	}

	for _, stat := range report.Statistics {
		status := "matches references"
		if !stat.Matched {
			status = "no match"
			if stat.MismatchedReference != "" {
				status = "differs from " + stat.MismatchedReference
			}
		}

		sources := "untrusted sources"
		if stat.SourcesTrusted {
			sources = "trusted sources"
		}
		if len(stat.SourceDomains) > 0 {
			sources += ": " + strings.Join(stat.SourceDomains, ", ")
		}

		fmt.Fprintf(sb, "  - %s = %d (%s; %s)\n", stat.Description, stat.Value, status, sources)
		for _, location := range stat.UntrustedSources {
			fmt.Fprintf(sb, "    untrusted: %s\n", location)
		}
	}
}

// WriteSummary outputs a one-line count of the verdicts.
func (w *SimpleWriter) WriteSummary(summary *model.Summary) (int, error) {
	line := fmt.Sprintf("Checked %d website(s): %d accurate, %d not accurate, %d without relevant sources, %d failed\n",
		summary.Total,
		summary.Accurate,
		summary.NotAccurate,
		summary.NoRelevantSources,
		summary.Errors,
	)
	return io.WriteString(w.output, line)
}
