package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/stylecheck"
	"github.com/tsawler/stylecheck/config"
	"github.com/tsawler/stylecheck/logging"
	"github.com/tsawler/stylecheck/report"
	"github.com/tsawler/stylecheck/rules"
	"github.com/tsawler/stylecheck/storage"
)

// NewCheckCommand creates and returns the check subcommand
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <document.docx>",
		Short: "Check a manuscript and save the corrected copy",
		Long: `Run a style's checks over a manuscript. The corrected document is saved
under <output-dir>/<name>/ and the report is written to stdout or to
--report-file. A short summary is printed to stderr.

Optional APA checks (tables, figures, running head, page numbers) are off
unless enabled in the configuration file or by flag.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := checkConfig(cmd)
			if err != nil {
				return err
			}
			return runCheck(cmd, args[0], cfg)
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("style", "", "style tag (APA or Custom)")
	cmd.Flags().String("output-dir", "", "directory for corrected documents")
	cmd.Flags().String("name", "", "subdirectory for the corrected document (default: input file name)")
	cmd.Flags().String("report-format", "", "report format: json, yaml, markdown or html")
	cmd.Flags().String("report-file", "", "write the report to this file instead of stdout")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn or error")
	cmd.Flags().Bool("dry-run", false, "check without saving the corrected document")
	cmd.Flags().Bool("tables", false, "enable the table check")
	cmd.Flags().Bool("figures", false, "enable the figure check")
	cmd.Flags().Bool("running-head", false, "enable the running head check")
	cmd.Flags().Bool("page-numbers", false, "enable the page number check")

	return cmd
}

// checkConfig loads the configuration file and applies flag overrides.
func checkConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	strFlags := map[string]*string{
		"style":         &cfg.Style,
		"output-dir":    &cfg.OutputDir,
		"report-format": &cfg.ReportFormat,
		"log-level":     &cfg.LogLevel,
	}
	for name, dst := range strFlags {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	boolFlags := map[string]*bool{
		"tables":       &cfg.Checks.Tables,
		"figures":      &cfg.Checks.Figures,
		"running-head": &cfg.Checks.RunningHead,
		"page-numbers": &cfg.Checks.PageNumbers,
	}
	for name, dst := range boolFlags {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetBool(name)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runCheck(cmd *cobra.Command, path string, cfg *config.Config) error {
	logger, err := logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Format: logging.Format(cfg.LogFormat),
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	checker := stylecheck.Open(path).
		Style(cfg.Style).
		APAOptions(rules.APAOptions{
			Tables:      cfg.Checks.Tables,
			Figures:     cfg.Checks.Figures,
			RunningHead: cfg.Checks.RunningHead,
			PageNumbers: cfg.Checks.PageNumbers,
		}).
		Logger(logger).
		Guard(storage.NewGuard(cfg.LockDir))

	var res *stylecheck.Result
	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		res, err = checker.Check(cmd.Context())
	} else {
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		res, err = checker.Store(storage.NewFileStore(cfg.OutputDir)).Save(cmd.Context(), name)
	}
	if err != nil {
		return err
	}

	if err := writeReport(cmd, res.Report, cfg.ReportFormat); err != nil {
		return err
	}
	printSummary(cmd.ErrOrStderr(), res.Summary, res.Path)
	return nil
}

func writeReport(cmd *cobra.Command, r report.Report, format string) error {
	file, _ := cmd.Flags().GetString("report-file")
	if file == "" {
		return report.Encode(cmd.OutOrStdout(), r, format)
	}
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := report.Encode(f, r, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
