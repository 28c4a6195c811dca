package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/factcheck/internal/model"
)

// JSONWriter outputs reports as JSON, one document per call.
type JSONWriter struct {
	baseWriter

	indent       bool
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in JSON format.
func (w *JSONWriter) Write(report *model.CheckReport) (int, error) {
	return w.writeJSON(report)
}

// WriteSummary outputs the summary in JSON format.
func (w *JSONWriter) WriteSummary(summary *model.Summary) (int, error) {
	return w.writeJSON(summary)
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}

// JSONBatch wraps the reports of one run with version information.
type JSONBatch struct {
	Version string               `json:"version"`
	Reports []*model.CheckReport `json:"reports"`
	Summary *model.Summary       `json:"summary"`
}

// NewJSONBatch creates a JSONBatch and computes its summary.
func NewJSONBatch(reports []*model.CheckReport, version string) *JSONBatch {
	return &JSONBatch{
		Version: version,
		Reports: reports,
		Summary: model.NewSummary(reports),
	}
}

// WriteBatch outputs all reports of a run as a single JSON document.
func (w *JSONWriter) WriteBatch(batch *JSONBatch) (int, error) {
	return w.writeJSON(batch)
}
