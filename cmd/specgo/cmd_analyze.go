package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chemolab/specgo/config"
	"github.com/chemolab/specgo/dataset"
	"github.com/chemolab/specgo/mcr"
	gerrors "github.com/chemolab/specgo/pkg/errors"
	"github.com/chemolab/specgo/pkg/log"
	"github.com/chemolab/specgo/specplot"
)

var (
	analyzeInput       string
	analyzeConfigPath  string
	analyzeOutputDir   string
	analyzeInteractive bool
	analyzeComponents  int
	analyzePlotPath    string
	analyzeLogLevel    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Resolve pure components from a CSV spectral matrix",
	Long: `Analyze reads a CSV dataset (header row: name plus variable coordinates;
data rows: observation coordinate plus intensities; empty cells are masked),
runs the SIMPLISMA selection, and writes the concentration matrix, the
pure-compound spectra and the run report to the output directory.

Example usage:
  specgo analyze --input spectra.csv
  specgo analyze --input spectra.csv --config run.yaml --output-dir out
  specgo analyze --input spectra.csv --interactive
  specgo analyze --input spectra.csv --plot merit.png`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "", "Path to the input CSV dataset (required)")
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to a YAML run configuration")
	analyzeCmd.Flags().StringVar(&analyzeOutputDir, "output-dir", ".", "Directory for C.csv, St.csv and report.txt")
	analyzeCmd.Flags().BoolVar(&analyzeInteractive, "interactive", false, "Review each purest variable on the terminal")
	analyzeCmd.Flags().IntVar(&analyzeComponents, "n-components", 0, "Override the maximum number of pure compounds")
	analyzeCmd.Flags().StringVar(&analyzePlotPath, "plot", "", "Also render the merit overlay to this image file")
	analyzeCmd.Flags().StringVar(&analyzeLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	if err := analyzeCmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log.SetLevel(levelFromName(analyzeLogLevel))
	log.RegisterWarningSink(os.Stderr)
	logger := log.GetLoggerWithName("specgo")

	cfg, err := config.Load(analyzeConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("interactive") {
		cfg.Interactive = analyzeInteractive
	}
	if cmd.Flags().Changed("n-components") {
		cfg.NComponents = analyzeComponents
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sm, err := dataset.ReadCSVFile(analyzeInput)
	if err != nil {
		return err
	}
	if sm.Name == "" {
		sm.Name = filepath.Base(analyzeInput)
	}
	n, p := sm.Dims()
	logger.Info("dataset loaded",
		log.ObservationsKey, n,
		log.VariablesKey, p,
		log.InteractiveKey, cfg.Interactive,
	)

	opts := append(cfg.Options(), mcr.WithLogger(logger))
	if cfg.Interactive {
		opts = append(opts, mcr.WithCommander(mcr.NewConsolePrompter(os.Stdin, os.Stdout)))
	}
	model, err := mcr.NewSIMPLISMA(opts...)
	if err != nil {
		return err
	}

	c, st, err := model.FitTransform(sm)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(analyzeOutputDir, 0o755); err != nil {
		return gerrors.Wrapf(err, "creating output directory %s", analyzeOutputDir)
	}
	if err := dataset.WriteCSVFile(filepath.Join(analyzeOutputDir, "C.csv"), c); err != nil {
		return err
	}
	if err := dataset.WriteCSVFile(filepath.Join(analyzeOutputDir, "St.csv"), st); err != nil {
		return err
	}
	reportPath := filepath.Join(analyzeOutputDir, "report.txt")
	if err := os.WriteFile(reportPath, []byte(model.Log()), 0o644); err != nil {
		return gerrors.Wrapf(err, "writing %s", reportPath)
	}

	if analyzePlotPath != "" {
		xhat, err := model.InverseTransform()
		if err != nil {
			return err
		}
		if err := specplot.SaveMerit(sm, xhat, analyzePlotPath); err != nil {
			return err
		}
	}

	logger.Info("analysis complete",
		log.ComponentsKey, model.NComponents(),
		log.TerminationKey, model.Termination(),
	)
	return nil
}

func levelFromName(name string) log.Level {
	switch name {
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
