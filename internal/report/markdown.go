package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/factcheck/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports as GitHub-flavoured Markdown using
// nao1215/markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs one report as a Markdown section.
func (w *MarkdownWriter) Write(report *model.CheckReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H2(report.WebsiteName)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Verdict", verdictCell(report.Verdict)},
			{"Topics", orDash(strings.Join(titleTopics(report.Topics), ", "))},
			{"Self-declared trusted", strconv.FormatBool(report.Trusted)},
			{"Sources trusted", strconv.FormatBool(report.SelfAccurate)},
			{"Relevant references", orDash(strings.Join(report.RelevantReferences, ", "))},
			{"Checked", report.DateChecked.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")

	w.writeAlert(md, report)
	w.writeStatistics(md, report)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.CheckReport) {
	switch report.Verdict {
	case model.VerdictAccurate:
		md.Tip(verdictLine(report) + ".")
	case model.VerdictNotAccurate:
		md.Cautionf("%s.", verdictLine(report))
	case model.VerdictNoRelevantSources:
		md.Warningf("%s.", verdictLine(report))
	default:
		md.Importantf("%s.", verdictLine(report))
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeStatistics(md *markdown.Markdown, report *model.CheckReport) {
	if len(report.Statistics) == 0 {
		return
	}

	md.H3("Statistics")
	md.PlainText("")

	rows := make([][]string, len(report.Statistics))
	for i, stat := range report.Statistics {
		result := "✅ Matched"
		if !stat.Matched {
			result = "❌ Not matched"
			if stat.MismatchedReference != "" {
				result += " (" + stat.MismatchedReference + ")"
			}
		}
		rows[i] = []string{
			stat.Description,
			strconv.FormatInt(int64(stat.Value), 10),
			orDash(strings.Join(stat.SourceDomains, ", ")),
			strconv.FormatBool(stat.SourcesTrusted),
			result,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Description", "Value", "Sources", "Trusted", "Result"},
		Rows:   rows,
	})
	md.PlainText("")
}

// WriteSummary outputs the verdict counts with a mermaid pie chart.
func (w *MarkdownWriter) WriteSummary(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Fact Check Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Verdict", "Count"},
		Rows: [][]string{
			{verdictCell(model.VerdictAccurate), strconv.Itoa(summary.Accurate)},
			{verdictCell(model.VerdictNotAccurate), strconv.Itoa(summary.NotAccurate)},
			{verdictCell(model.VerdictNoRelevantSources), strconv.Itoa(summary.NoRelevantSources)},
			{verdictCell(model.VerdictError), strconv.Itoa(summary.Errors)},
			{"**Total**", "**" + strconv.Itoa(summary.Total) + "**"},
		},
	})
	md.PlainText("")

	if summary.Total > 0 {
		w.writePieChart(md, summary)
	}

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by factcheck on %s*", summary.DateChecked.Format("2006-01-02"))

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Verdicts"),
		piechart.WithShowData(true),
	)

	for _, v := range []model.Verdict{
		model.VerdictAccurate,
		model.VerdictNotAccurate,
		model.VerdictNoRelevantSources,
		model.VerdictError,
	} {
		if n := summary.Count(v); n > 0 {
			chart.LabelAndIntValue(verdictTitle(v), uint64(n))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func verdictTitle(v model.Verdict) string {
	switch v {
	case model.VerdictAccurate:
		return "Accurate"
	case model.VerdictNotAccurate:
		return "Not accurate"
	case model.VerdictNoRelevantSources:
		return "No relevant sources"
	case model.VerdictError:
		return "Error"
	default:
		return "Unknown"
	}
}

func verdictCell(v model.Verdict) string {
	switch v {
	case model.VerdictAccurate:
		return "✅ " + verdictTitle(v)
	case model.VerdictNotAccurate:
		return "❌ " + verdictTitle(v)
	case model.VerdictNoRelevantSources:
		return "⚠️ " + verdictTitle(v)
	default:
		return "❗ " + verdictTitle(v)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
