// Package commands implements the ruler subcommands.
package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kieroneil/ruler/internal/config"
	"github.com/kieroneil/ruler/pkg/expose"
	"github.com/kieroneil/ruler/pkg/frame"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Format string // table, json, csv, md
	Out    string // path for the JSON report artifact
	Assert bool   // fail when any breaker exists
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [dataset.csv]",
		Short: "Validate a dataset against the configured packs",
		Long: `Load a CSV dataset, apply the packs declared in ruler.yaml and print
the resulting packs info and validation report.

By default only breakers (violated rules) appear in the report; pass
--keep-obeyers to keep satisfied rules as well.`,
		Example: `  # Check the dataset declared in ruler.yaml
  ruler check

  # Check an explicit file, failing the command on any breaker
  ruler check data/scores.csv --assert

  # Machine-readable output plus a report artifact
  ruler check --format json --out report.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, json, csv, md")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Write a JSON report artifact to this path")
	cmd.Flags().BoolVar(&opts.Assert, "assert", false, "Exit non-zero when any breaker exists")
	cmd.Flags().String("dataset", "", "Path to the CSV dataset")
	cmd.Flags().Bool("keep-obeyers", false, "Keep satisfied rules in the report")
	cmd.Flags().Bool("no-guess", false, "Require every pack to declare its type")
	cmd.Flags().String("rule-sep", "", "Separator pattern for composite rule names")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(verbose)

	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	dataset := cfg.Dataset
	if len(args) > 0 {
		dataset = args[0]
	}
	if dataset == "" {
		return fmt.Errorf("no dataset given: pass a CSV path or set dataset in ruler.yaml")
	}

	data, err := frame.ReadCSVFile(dataset)
	if err != nil {
		return err
	}
	logger.Debug("dataset loaded", "path", dataset, "rows", data.NumRows(), "cols", data.NumCols())

	packList, err := config.BuildPacks(cfg)
	if err != nil {
		return err
	}
	if len(packList) == 0 {
		return fmt.Errorf("no packs configured")
	}

	engineOpts, err := config.EngineOptions(cfg)
	if err != nil {
		return err
	}
	engineOpts = append(engineOpts, expose.WithLogger(logger))

	out, err := expose.Expose(expose.New(data), packList, engineOpts...)
	if err != nil {
		return err
	}

	exp, err := out.Exposure()
	if err != nil {
		return err
	}

	format := opts.Format
	if format == "" {
		format = cfg.Output
	}
	if err := renderExposure(cmd.OutOrStdout(), exp, format); err != nil {
		return err
	}

	if opts.Out != "" {
		if err := writeArtifact(opts.Out, dataset, exp, logger); err != nil {
			return err
		}
	}

	if opts.Assert {
		if _, err := expose.AssertAnyBreaker(out); err != nil {
			return err
		}
	}
	return nil
}

// reportArtifact is the JSON document written by --out.
type reportArtifact struct {
	RunID   string `json:"run_id"`
	Dataset string `json:"dataset"`
	*expose.Exposure
}

func writeArtifact(path, dataset string, exp *expose.Exposure, logger *slog.Logger) error {
	artifact := reportArtifact{
		RunID:    uuid.NewString(),
		Dataset:  dataset,
		Exposure: exp,
	}
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info("report written", "path", path, "run_id", artifact.RunID)
	return nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
