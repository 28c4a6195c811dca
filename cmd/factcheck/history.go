package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/nao1215/factcheck/internal/config"
	"github.com/nao1215/factcheck/internal/database"
	"github.com/nao1215/factcheck/internal/model"
	"github.com/nao1215/factcheck/internal/report"
	"github.com/spf13/cobra"
)

// Verdict change directions between two checks.
const (
	changeImproved  = "improved"
	changeWorsened  = "worsened"
	changeChanged   = "changed"
	changeUnchanged = "unchanged"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [website]",
		Short: "Show stored verdicts",
		Long: `History lists the verdicts stored by previous check runs.

Each check stores the report together with a fingerprint of the checked
document, so a change of verdict can be traced to a change in the document.

Examples:
  # List all checked websites
  factcheck history -L

  # List the checks of one website, newest first
  factcheck history "Facebook post"

  # Show one stored report and the document it was made from
  factcheck history --id 3

  # Show the latest report of a website
  factcheck history --latest "Facebook post"

  # Compare the latest two checks of a website
  factcheck history --compare "Facebook post"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list-websites", "L", false,
		"List all checked websites in the database")
	cmd.Flags().Int64P("id", "i", 0,
		"Show the stored report with this ID")
	cmd.Flags().Bool("compare", false,
		"Compare the latest two checks of the website")
	cmd.Flags().Bool("latest", false,
		"Show the latest stored report of the website")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().String("db-dir", "", "History database directory")
	_ = cmd.Flags().MarkHidden("db-dir") //nolint:errcheck // flag is defined above

	return cmd
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listWebsites, err := cmd.Flags().GetBool("list-websites")
	if err != nil {
		return err
	}
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}
	compare, err := cmd.Flags().GetBool("compare")
	if err != nil {
		return err
	}
	latest, err := cmd.Flags().GetBool("latest")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	// Validate before opening the database so a usage error leaves no file.
	var website string
	if len(args) > 0 {
		website = args[0]
	}
	if id < 0 {
		return fmt.Errorf("invalid check ID %d: IDs are positive", id)
	}
	if !listWebsites && id == 0 && website == "" {
		return errors.New("website name is required (use --list-websites to see checked websites)")
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	switch {
	case listWebsites:
		return listCheckedWebsites(ctx, out, db, jsonOutput)
	case id > 0:
		return showCheckReport(ctx, out, db, id, jsonOutput)
	case compare:
		return compareLatestChecks(ctx, out, db, website, jsonOutput)
	case latest:
		return showLatestCheckReport(ctx, out, db, website, jsonOutput)
	default:
		return listCheckHistory(ctx, out, db, website, jsonOutput)
	}
}

func listCheckedWebsites(ctx context.Context, out io.Writer, db *database.VerdictDB, jsonOutput bool) error {
	websites, err := db.ListCheckedWebsites(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(out, websites)
	}

	if len(websites) == 0 {
		fmt.Fprintln(out, "No checked websites found in the database.")
		fmt.Fprintln(out, "\nUse 'factcheck check' to check documents.")
		return nil
	}

	fmt.Fprintf(out, "Checked websites (%d):\n\n", len(websites))
	for _, website := range websites {
		fmt.Fprintf(out, "  • %s\n", website)
	}
	fmt.Fprintln(out, "\nUse 'factcheck history <website>' to see the checks of a website.")
	return nil
}

func listCheckHistory(ctx context.Context, out io.Writer, db *database.VerdictDB, website string, jsonOutput bool) error {
	history, err := db.GetCheckHistoryWithMetadata(ctx, website)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(out, historyEntries(history))
	}

	if len(history) == 0 {
		fmt.Fprintf(out, "No check history found for %s\n", website)
		return nil
	}

	fmt.Fprintf(out, "Check history for %s (%d checks):\n\n", website, len(history))
	fmt.Fprintf(out, "  %-6s  %-20s  %-20s  %-10s  %s\n", "ID", "Date", "Verdict", "Matched", "Document")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 78))

	for _, meta := range history {
		fmt.Fprintf(out, "  %-6d  %-20s  %-20s  %-10s  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.Verdict.String(),
			fmt.Sprintf("%d/%d", meta.StatisticsMatched, meta.StatisticsTotal),
			shortFingerprint(meta.Fingerprint),
		)
	}

	fmt.Fprintln(out, "\nUse 'factcheck history --id <id>' to show a stored report.")
	return nil
}

// historyEntry is the JSON form of a history row.
type historyEntry struct {
	ID                int64         `json:"id"`
	Date              time.Time     `json:"date"`
	Verdict           model.Verdict `json:"verdict"`
	StatisticsTotal   int           `json:"statistics_total"`
	StatisticsMatched int           `json:"statistics_matched"`
	Fingerprint       string        `json:"fingerprint,omitempty"`
}

func historyEntries(history []database.CheckReportMetadata) []historyEntry {
	entries := make([]historyEntry, 0, len(history))
	for _, meta := range history {
		entries = append(entries, historyEntry{
			ID:                meta.ID,
			Date:              meta.Timestamp,
			Verdict:           meta.Verdict,
			StatisticsTotal:   meta.StatisticsTotal,
			StatisticsMatched: meta.StatisticsMatched,
			Fingerprint:       meta.Fingerprint,
		})
	}
	return entries
}

// storedCheck is the JSON form of one stored check and its document.
type storedCheck struct {
	ID          int64              `json:"id"`
	Fingerprint string             `json:"fingerprint,omitempty"`
	Report      *model.CheckReport `json:"report"`
	Document    *model.Information `json:"document,omitempty"`
}

func showCheckReport(ctx context.Context, out io.Writer, db *database.VerdictDB, id int64, jsonOutput bool) error {
	meta, err := db.GetCheckReportMetadata(ctx, id)
	if err != nil {
		return err
	}
	r, err := db.GetCheckReportByID(ctx, id)
	if err != nil {
		return err
	}
	if meta == nil || r == nil {
		return fmt.Errorf("check with ID %d not found", id)
	}

	var doc *model.Information
	if meta.Fingerprint != "" {
		if doc, err = db.GetDocument(ctx, meta.Fingerprint); err != nil {
			return err
		}
	}

	if jsonOutput {
		return writeJSON(out, storedCheck{
			ID:          id,
			Fingerprint: meta.Fingerprint,
			Report:      r,
			Document:    doc,
		})
	}

	if _, err := report.NewSimpleWriter(out, report.WithVerbose(true)).Write(r); err != nil {
		return err
	}
	if doc != nil {
		writeDocumentText(out, meta.Fingerprint, doc)
	}
	return nil
}

// writeDocumentText prints the statistics of a stored document with their
// cited sources.
func writeDocumentText(out io.Writer, fingerprint string, doc *model.Information) {
	trusted := "untrusted"
	if doc.IsTrusted {
		trusted = "trusted"
	}
	fmt.Fprintf(out, "\nDocument %s (%s, %d statistics):\n",
		shortFingerprint(fingerprint), trusted, len(doc.Statistics))
	for _, stat := range doc.Statistics {
		fmt.Fprintf(out, "  - %s = %d\n", stat.Description, stat.Value)
		for _, src := range stat.Sources {
			mark := "untrusted"
			if src.Trusted {
				mark = "trusted"
			}
			fmt.Fprintf(out, "      %s (%s)\n", src.Location, mark)
		}
	}
}

func showLatestCheckReport(ctx context.Context, out io.Writer, db *database.VerdictDB, website string, jsonOutput bool) error {
	r, err := db.GetLatestCheckReport(ctx, website)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no check found for %s", website)
	}

	if jsonOutput {
		_, err = report.NewJSONWriter(out, report.WithPrettyPrint()).Write(r)
		return err
	}
	_, err = report.NewSimpleWriter(out, report.WithVerbose(true)).Write(r)
	return err
}

// CheckComparison describes how the verdict of a website changed between
// two checks.
type CheckComparison struct {
	WebsiteName string        `json:"website_name"`
	Previous    CheckSnapshot `json:"previous"`
	Current     CheckSnapshot `json:"current"`

	// Direction is "improved", "worsened", "changed", or "unchanged".
	Direction string `json:"direction"`

	// DocumentChanged is true when the checked documents differ.
	DocumentChanged bool `json:"document_changed"`

	// NewlyMatched lists statistics that match now but did not before.
	NewlyMatched []string `json:"newly_matched,omitempty"`

	// NoLongerMatched lists statistics that matched before but not now.
	NoLongerMatched []string `json:"no_longer_matched,omitempty"`
}

// CheckSnapshot summarizes one stored check.
type CheckSnapshot struct {
	ID          int64         `json:"id"`
	DateChecked time.Time     `json:"date_checked"`
	Verdict     model.Verdict `json:"verdict"`
	Fingerprint string        `json:"fingerprint,omitempty"`
}

func compareLatestChecks(ctx context.Context, out io.Writer, db *database.VerdictDB, website string, jsonOutput bool) error {
	history, err := db.GetCheckHistoryWithMetadata(ctx, website)
	if err != nil {
		return err
	}
	if len(history) < 2 {
		return fmt.Errorf("at least 2 checks are required for comparison (found %d)", len(history))
	}

	current, err := db.GetCheckReportByID(ctx, history[0].ID)
	if err != nil {
		return err
	}
	previous, err := db.GetCheckReportByID(ctx, history[1].ID)
	if err != nil {
		return err
	}
	if current == nil || previous == nil {
		return fmt.Errorf("stored reports for %s could not be read", website)
	}

	result := compareReports(previous, current)
	result.Previous.ID, result.Previous.Fingerprint = history[1].ID, history[1].Fingerprint
	result.Current.ID, result.Current.Fingerprint = history[0].ID, history[0].Fingerprint
	result.DocumentChanged = history[0].Fingerprint != history[1].Fingerprint

	if jsonOutput {
		return writeJSON(out, result)
	}
	writeComparisonText(out, result)
	return nil
}

// compareReports compares two check reports of the same website.
func compareReports(previous, current *model.CheckReport) *CheckComparison {
	result := &CheckComparison{
		WebsiteName: current.WebsiteName,
		Previous:    CheckSnapshot{DateChecked: previous.DateChecked, Verdict: previous.Verdict},
		Current:     CheckSnapshot{DateChecked: current.DateChecked, Verdict: current.Verdict},
		Direction:   verdictChange(previous.Verdict, current.Verdict),
	}

	before := matchedStatistics(previous)
	after := matchedStatistics(current)
	for desc, matched := range after {
		if matched && !before[desc] {
			result.NewlyMatched = append(result.NewlyMatched, desc)
		}
	}
	for desc, matched := range before {
		if matched && !after[desc] {
			result.NoLongerMatched = append(result.NoLongerMatched, desc)
		}
	}
	slices.Sort(result.NewlyMatched)
	slices.Sort(result.NoLongerMatched)

	return result
}

func matchedStatistics(r *model.CheckReport) map[string]bool {
	m := make(map[string]bool, len(r.Statistics))
	for _, stat := range r.Statistics {
		m[stat.Description] = m[stat.Description] || stat.Matched
	}
	return m
}

func verdictChange(previous, current model.Verdict) string {
	switch {
	case previous == current:
		return changeUnchanged
	case current == model.VerdictAccurate:
		return changeImproved
	case previous == model.VerdictAccurate:
		return changeWorsened
	default:
		return changeChanged
	}
}

func writeComparisonText(out io.Writer, result *CheckComparison) {
	fmt.Fprintf(out, "Check Comparison: %s\n", result.WebsiteName)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintf(out, "\nVerdict: %s -> %s (%s)\n",
		result.Previous.Verdict, result.Current.Verdict, strings.ToUpper(result.Direction))
	fmt.Fprintf(out, "\nPrevious check: #%d %s\n", result.Previous.ID, result.Previous.DateChecked.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Current check:  #%d %s\n", result.Current.ID, result.Current.DateChecked.Format("2006-01-02 15:04:05"))

	if result.DocumentChanged {
		fmt.Fprintln(out, "\nThe document changed between the checks.")
	}

	if len(result.NewlyMatched) > 0 {
		fmt.Fprintf(out, "\nNewly matched (%d):\n", len(result.NewlyMatched))
		for _, desc := range result.NewlyMatched {
			fmt.Fprintf(out, "  [+] %s\n", desc)
		}
	}
	if len(result.NoLongerMatched) > 0 {
		fmt.Fprintf(out, "\nNo longer matched (%d):\n", len(result.NoLongerMatched))
		for _, desc := range result.NoLongerMatched {
			fmt.Fprintf(out, "  [-] %s\n", desc)
		}
	}
}

func shortFingerprint(fp string) string {
	if fp == "" {
		return "-"
	}
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}

func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
