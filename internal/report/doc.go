// Package report renders check reports.
//
//   - SimpleWriter: one verdict line per website, for the terminal
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: GitHub-flavoured markdown with a verdict chart
//
// Writers implement the Writer interface and can be combined with
// MultiWriter.
package report
