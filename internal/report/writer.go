package report

import (
	"io"
	"strings"

	"github.com/nao1215/factcheck/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Writer renders check reports to an output.
type Writer interface {
	// Write outputs one check report.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.CheckReport) (int, error)

	// WriteSummary outputs the verdict counts of a batch.
	WriteSummary(summary *model.Summary) (int, error)
}

// MultiWriter writes to multiple Writers in order and stops on the first
// error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
func (m *MultiWriter) Write(report *model.CheckReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteSummary outputs the summary to all configured Writers.
func (m *MultiWriter) WriteSummary(summary *model.Summary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteSummary(summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// titleTopics returns topics title-cased for display, e.g. "labor market"
// becomes "Labor Market".
func titleTopics(topics []string) []string {
	caser := cases.Title(language.English)
	out := make([]string, len(topics))
	for i, topic := range topics {
		out[i] = caser.String(topic)
	}
	return out
}

// verdictLine renders the one-line verdict for a report.
func verdictLine(report *model.CheckReport) string {
	var sb strings.Builder
	sb.WriteString("The website ")
	sb.WriteString(report.WebsiteName)
	sb.WriteString(" ")
	sb.WriteString(report.Verdict.Label())
	if !report.Verdict.Conclusive() && report.ErrorMessage != "" {
		sb.WriteString(": ")
		sb.WriteString(report.ErrorMessage)
	}
	return sb.String()
}
