package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nao1215/factcheck/internal/config"
	"github.com/nao1215/factcheck/internal/database"
	"github.com/nao1215/factcheck/internal/document"
	"github.com/nao1215/factcheck/internal/model"
	"github.com/nao1215/factcheck/internal/pipeline"
	"github.com/nao1215/factcheck/internal/report"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [subject-file...]",
		Short: "Check documents against trusted references",
		Long: `Check judges whether the statistics in each subject document are accurate.

Every subject is compared with the reference documents that share at least
one of its topics. A subject with no such reference cannot be checked and
makes the command exit with an error. Self-declared trusted subjects are
always accurate.

Documents are JSON (or YAML when the file ends in .yaml/.yml):
  {
    "website_name": "Facebook post",
    "is_trusted": false,
    "website_topics": ["employment"],
    "statistics": [{
      "description": "national unemployment rate in percent",
      "value": 4,
      "sources": [{"location": "https://www.bls.gov/cps/", "trusted": true}]
    }]
  }

Examples:
  # Run the embedded demonstration
  factcheck check

  # Check a post against a government reference
  factcheck check post.json -r gov.json

  # Judge a document by its own sources only
  factcheck check --self post.json

  # Markdown report written to a file
  factcheck check -m -o report.md post.json blog.json -r gov.json

Configuration file (.factcheck) example:
  defaults:
    references: [gov.json]
  subjects:
    blog.json:
      references: [stats.json]
    post.json:
      selfCheck: true`,
		Args: cobra.ArbitraryArgs,
		RunE: runCheckCmd,
	}

	cmd.Flags().StringArrayP("reference", "r", nil,
		"Trusted reference document (repeatable)")
	cmd.Flags().BoolP("self", "s", false,
		"Judge subjects by their own sources, without references")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of documents checked concurrently")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .factcheck in current or home directory)")

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed); verdict lines still go to stdout")

	cmd.Flags().Bool("no-save", false, "Do not store verdicts in the history database")
	cmd.Flags().String("db-dir", "", "History database directory")
	_ = cmd.Flags().MarkHidden("db-dir") //nolint:errcheck // flag is defined above

	return cmd
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd, cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runCheck(ctx, cfg, logger, cmd.OutOrStdout())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the optional
// configuration file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	if cfg.References, err = cmd.Flags().GetStringArray("reference"); err != nil {
		return nil, err
	}
	if cfg.SelfCheck, err = cmd.Flags().GetBool("self"); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	// An explicit config path must exist; the default locations are optional.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		if cfg.File, err = config.LoadConfigFile(configPath); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		// Paths in the file are relative to the file itself.
		cfg.File.ResolvePaths(filepath.Dir(configPath))
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if !cmd.Flags().Changed("batch") && cfg.File.BatchSize > 0 {
		cfg.BatchSize = cfg.File.BatchSize
	}

	cfg.Subjects = args
	if len(cfg.Subjects) == 0 {
		cfg.Subjects = cfg.File.SubjectPaths()
	}
	cfg.UseDemo = len(cfg.Subjects) == 0

	return cfg, nil
}

// checkJob is one subject together with the references it is checked
// against.
type checkJob struct {
	subject    model.Information
	references []model.Information
	selfCheck  bool
}

// planChecks loads every document needed by the run. Reference files shared
// between subjects are read once.
func planChecks(cfg *config.Config) ([]checkJob, error) {
	if cfg.UseDemo {
		demo, err := document.LoadDemo()
		if err != nil {
			return nil, err
		}
		jobs := make([]checkJob, 0, len(demo.Subjects))
		for _, subject := range demo.Subjects {
			jobs = append(jobs, checkJob{
				subject:    subject,
				references: demo.References,
				selfCheck:  cfg.SelfCheck,
			})
		}
		return jobs, nil
	}

	// Global references apply to every subject and are loaded up front.
	globals, err := document.LoadFiles(cfg.References)
	if err != nil {
		return nil, err
	}
	cache := make(map[string]model.Information, len(globals))
	for i, path := range cfg.References {
		cache[path] = globals[i]
	}

	load := func(path string) (model.Information, error) {
		if info, ok := cache[path]; ok {
			return info, nil
		}
		info, err := document.LoadFile(path)
		if err != nil {
			return model.Information{}, err
		}
		cache[path] = *info
		return *info, nil
	}

	jobs := make([]checkJob, 0, len(cfg.Subjects))
	for _, path := range cfg.Subjects {
		subject, err := load(path)
		if err != nil {
			return nil, err
		}

		job := checkJob{subject: subject, selfCheck: cfg.SelfCheckFor(path)}
		if !job.selfCheck {
			for _, refPath := range cfg.ReferencesFor(path) {
				ref, err := load(refPath)
				if err != nil {
					return nil, err
				}
				job.references = append(job.references, ref)
			}
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// runCheck checks every planned subject, writes the report and stores the
// verdicts. It returns an error when a document cannot be loaded or when any
// subject could not be judged.
func runCheck(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	jobs, err := planChecks(cfg)
	if err != nil {
		return err
	}

	logger.Debug("starting check",
		"subjects", len(jobs),
		"demo", cfg.UseDemo,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	var db *database.VerdictDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Debug("database opened", "path", db.Path())
	}

	subjects := make([]model.Information, len(jobs))
	for i := range jobs {
		subjects[i] = jobs[i].subject
	}

	startTime := time.Now()
	bp := pipeline.NewBatchProcessor(
		func(_ *model.Information, index int) *pipeline.Pipeline {
			job := jobs[index]
			return pipeline.DefaultPipeline(
				job.references,
				[]pipeline.Option{pipeline.WithLogger(logger)},
				pipeline.WithSelfCheckOnly(job.selfCheck),
			)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	reports, err := bp.ProcessBatch(ctx, subjects)
	if err != nil {
		return err
	}
	logger.Debug("check completed", "elapsed", time.Since(startTime).Round(time.Millisecond))

	if err := outputReports(cfg, stdout, reports); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	for _, r := range reports {
		if err := saveCheckReport(ctx, db, r, logger); err != nil {
			logger.Warn("failed to save check report", "website", r.WebsiteName, "error", err)
		}
	}

	return checkFailures(reports)
}

// checkFailures collects the errors of reports that reached no verdict.
func checkFailures(reports []*model.CheckReport) error {
	if model.NewSummary(reports).AllConclusive() {
		return nil
	}

	var errs []error
	for _, r := range reports {
		if r == nil || r.Verdict.Conclusive() || r.Error == nil {
			continue
		}
		errs = append(errs, fmt.Errorf("%s: %w", r.WebsiteName, r.Error))
	}
	return errors.Join(errs...)
}

// outputReports writes the reports in the requested format to the report
// file or stdout.
func outputReports(cfg *config.Config, stdout io.Writer, reports []*model.CheckReport) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	// With a report file, the verdict lines still go to stdout.
	var echo report.Writer
	if cfg.ReportFile != "" {
		echo = report.NewSimpleWriter(stdout)
	}

	if cfg.JSONReport {
		if _, err := report.NewJSONWriter(output, report.WithPrettyPrint()).
			WriteBatch(report.NewJSONBatch(reports, getVersion())); err != nil {
			return err
		}
		if echo == nil {
			return nil
		}
		return writeReports(echo, reports, false)
	}

	var w report.Writer
	if cfg.MarkdownReport {
		w = report.NewMarkdownWriter(output)
	} else {
		w = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
	if echo != nil {
		w = report.NewMultiWriter(w, echo)
	}

	return writeReports(w, reports, cfg.MarkdownReport || (cfg.Verbose && len(reports) > 1))
}

// writeReports writes every report and, if withSummary is set, the verdict
// counts.
func writeReports(w report.Writer, reports []*model.CheckReport, withSummary bool) error {
	for _, r := range reports {
		if r == nil {
			continue
		}
		if _, err := w.Write(r); err != nil {
			return err
		}
	}

	if withSummary {
		if _, err := w.WriteSummary(model.NewSummary(reports)); err != nil {
			return err
		}
	}
	return nil
}

// saveCheckReport stores the checked document and its report.
// If db is nil, this function is a no-op.
func saveCheckReport(ctx context.Context, db *database.VerdictDB, r *model.CheckReport, logger *slog.Logger) error {
	if db == nil || r == nil {
		return nil
	}

	var fingerprint string
	if r.Subject != nil {
		var err error
		if fingerprint, err = db.SaveDocument(ctx, r.Subject); err != nil {
			return err
		}
	}

	id, err := db.SaveCheckReport(ctx, r, fingerprint)
	if err != nil {
		return err
	}

	logger.Debug("check report saved", "website", r.WebsiteName, "id", id)
	return nil
}
