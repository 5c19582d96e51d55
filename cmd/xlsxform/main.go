// Package main provides the CLI entry point for xlsxform-go.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlsxform-go/pkg/xlsxform"
	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/config"
	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/output"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	outputPath string
	outDir     string
	format     string
	compact    bool
	configPath string
	logLevel   string
	workers    int
	sheet      string
	headerRows int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlsxform [input.xlsx...]",
		Short: "Convert spreadsheet form templates to JSON",
		Long: `xlsxform reads form templates (dropdown, text, textarea, multiselect
and radio fields) from Excel workbooks and writes a JSON field document.

Labels are read from column A and inputs from column B. The first row is
treated as a header and skipped; use --header-rows 0 for templates whose
fields start on row 1.`,
		Args:          cobra.MinimumNArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (single input; default: stdout)")
	rootCmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory, one <name>.json per input")
	rootCmd.Flags().StringVar(&format, "format", "", "Output format: json or yaml")
	rootCmd.Flags().BoolVar(&compact, "compact", false, "Write compact output instead of indented")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to configuration file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Maximum concurrent conversions (default: number of CPUs)")
	rootCmd.Flags().StringVar(&sheet, "sheet", "", "Template sheet name (default: first sheet)")
	rootCmd.Flags().IntVar(&headerRows, "header-rows", 1, "Leading rows skipped before fields")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	opts := cfg.Options()
	opts.Logger = logger

	if len(args) > 1 && outDir == "" {
		return fmt.Errorf("--out-dir is required when converting more than one file")
	}
	if len(args) > 1 && outputPath != "" {
		return fmt.Errorf("--output accepts a single input; use --out-dir")
	}

	// Single input without a destination goes to stdout.
	if len(args) == 1 && outputPath == "" && outDir == "" {
		return printDocument(args[0], opts)
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	requests := make([]xlsxform.ConvertArgs, len(args))
	for i, input := range args {
		requests[i] = xlsxform.ConvertArgs{InputPath: input, OutputPath: outputFor(input, opts.Format)}
	}

	runner := xlsxform.NewRunner(opts)
	defer runner.Close()

	errs, err := xlsxform.ConvertAll(context.Background(), runner, requests)
	if err != nil {
		return err
	}

	failed := 0
	for i, convErr := range errs {
		if convErr != nil {
			failed++
			logger.Error("Conversion failed",
				zap.String("input", requests[i].InputPath),
				zap.String("kind", string(xlsxform.KindOf(convErr))),
				zap.Error(convErr),
			)
			continue
		}
		logger.Info("Converted",
			zap.String("input", requests[i].InputPath),
			zap.String("output", requests[i].OutputPath),
		)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(requests))
	}
	return nil
}

// applyFlags lets explicitly set flags override configuration values.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("compact") {
		cfg.Pretty = !compact
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("sheet") {
		cfg.Sheet = sheet
	}
	if flags.Changed("header-rows") {
		cfg.Policy.HeaderRows = headerRows
	}
}

func printDocument(input string, opts xlsxform.Options) error {
	result, err := xlsxform.Read(input, opts)
	if err != nil {
		return err
	}
	data, err := output.Encode(result, opts.Format, opts.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}

func outputFor(input string, f output.Format) string {
	if outputPath != "" {
		return outputPath
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(outDir, base+"."+string(f))
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
