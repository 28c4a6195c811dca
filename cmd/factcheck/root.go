package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	applog "github.com/nao1215/factcheck/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for factcheck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factcheck",
		Short: "Check website statistics against trusted sources",
		Long: `factcheck judges whether the statistics a website publishes are accurate.

A document is accurate when it is self-declared trusted, or when every
statistic it contains agrees with the trusted reference documents that
share one of its topics. Without arguments, the check command runs on
embedded demonstration documents.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging and detailed reports")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs to stderr as JSON")

	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger creates the redacting logger selected by the --log-json flag.
func newLogger(cmd *cobra.Command, w io.Writer, verbose bool) *slog.Logger {
	jsonLogs, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		jsonLogs, _ = cmd.Root().PersistentFlags().GetBool("log-json") //nolint:errcheck // defined on the root command
	}
	if jsonLogs {
		return applog.NewJSONLogger(w, verbose)
	}
	return applog.NewLogger(w, verbose)
}
