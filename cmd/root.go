package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"table-reconcile/core/config"
	"table-reconcile/core/logger"
	"table-reconcile/core/reconcile"
	"table-reconcile/core/report"
	"table-reconcile/feature/reconciliation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runFlags holds the values bound to the root command flags.
type runFlags struct {
	source    string
	target    string
	key       string
	delimiter string
	header    int
	tolerance float64
	prefix    string
	jsonOut   bool
	upload    bool
	export    bool
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "reconcile -s SOURCE -t TARGET -k KEYS [flags]",
		Short: "Reconcile two delimited tabular files",
		Long: `Reconcile compares a source and a target delimited file that should hold the
same records, matched by one or more key columns.

It reports keys missing in the target, extra keys in the target, duplicate keys
in either file, per-column value mismatches (with optional numeric tolerance)
and schema differences, and writes them as <prefix>_* artifacts.

Inputs may be local paths or s3://bucket/key objects.

Examples:
  # Header row, key by name
  reconcile -s old.csv -t new.csv -k id

  # Semicolon separated, composite key, 1 cent tolerance
  reconcile -s a.csv -t b.csv -k id,region -d ';' -T 0.01 -p out/daily

  # Headerless files keyed by the first column
  reconcile -s a.txt -t b.txt -k 1 -H 0 -d '\t'`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return reconcile.UsageError(nil, "unexpected arguments: %v", args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.source, "source", "s", "", "Source file path or s3://bucket/key (required)")
	f.StringVarP(&flags.target, "target", "t", "", "Target file path or s3://bucket/key (required)")
	f.StringVarP(&flags.key, "key", "k", "", "Key columns: header names, or 1-based positions when -H 0 (required)")
	f.StringVarP(&flags.delimiter, "delimiter", "d", ",", `Field delimiter, a single character or \t`)
	f.IntVarP(&flags.header, "header", "H", 1, "1 if files have a header row, 0 otherwise")
	f.Float64VarP(&flags.tolerance, "tolerance", "T", 0, "Absolute tolerance for numeric comparisons")
	f.StringVarP(&flags.prefix, "prefix", "p", "reconcile", "Output file prefix, may include a directory")
	f.BoolVar(&flags.jsonOut, "json", false, "Print the full report as JSON instead of the summary")
	f.BoolVar(&flags.upload, "upload", false, "Upload artifacts to object storage")
	f.BoolVar(&flags.export, "export-db", false, "Export the report to the SQL database")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return reconcile.UsageError(err, "invalid arguments")
	})

	cmd.AddCommand(newServeCmd())
	return cmd
}

func runReconcile(cmd *cobra.Command, flags *runFlags) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	job, err := buildJob(cmd, flags, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := reconciliation.NewService(cfg, l, nil, nil)
	result, err := svc.Run(ctx, job)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flags.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	for _, line := range report.SummaryLines(result.Report.Summary) {
		fmt.Fprintln(out, line)
	}
	l.Debug("Artifacts written", zap.Strings("files", result.Files))
	return nil
}

// buildJob maps flags onto a job. Flags left at their defaults defer to the
// configuration.
func buildJob(cmd *cobra.Command, flags *runFlags, cfg *config.Config) (reconciliation.Job, error) {
	f := cmd.Flags()

	if flags.source == "" {
		return reconciliation.Job{}, reconcile.UsageError(nil, "missing required source file (-s)")
	}
	if flags.target == "" {
		return reconciliation.Job{}, reconcile.UsageError(nil, "missing required target file (-t)")
	}
	if flags.key == "" {
		return reconciliation.Job{}, reconcile.UsageError(nil, "missing required key specification (-k)")
	}

	job := reconciliation.Job{
		Source: flags.source,
		Target: flags.target,
		Key:    flags.key,
		Prefix: cfg.Reconcile.Prefix,
	}
	if f.Changed("delimiter") {
		job.Delimiter = flags.delimiter
	}
	if f.Changed("header") {
		job.Header = &flags.header
	}
	if f.Changed("tolerance") {
		job.Tolerance = &flags.tolerance
	}
	if f.Changed("prefix") {
		if flags.prefix == "" {
			return reconciliation.Job{}, reconcile.UsageError(nil, "output prefix must not be empty")
		}
		job.Prefix = flags.prefix
	}
	if job.Prefix == "" {
		job.Prefix = "reconcile"
	}
	if f.Changed("upload") {
		job.Upload = &flags.upload
	}
	if f.Changed("export-db") {
		job.Export = &flags.export
	}
	return job.WithDefaults(cfg), nil
}

// Execute runs the root command and exits with the mapped exit code on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console logger with ISO8601 timestamps, independent of the loaded config
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(reconcile.ExitCode(err))
	}
}
