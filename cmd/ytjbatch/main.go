// Package main provides the ytjbatch binary entry point.
// Ytjbatch batch-resolves Finnish business identifiers against the national
// business registry's open-data API and renders the results to the console,
// CSV or Excel.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/norppasoft/ytjbatch/batch"
	"github.com/norppasoft/ytjbatch/config"
	"github.com/norppasoft/ytjbatch/input"
	"github.com/norppasoft/ytjbatch/normalize"
	"github.com/norppasoft/ytjbatch/output"
	"github.com/norppasoft/ytjbatch/registry"
)

const (
	Version = "0.1.0"
	appName = "ytjbatch"
)

// Output file formats.
const (
	FormatAuto = "auto"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		outputPath string
		format     string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "ytjbatch <identifier-file>",
		Short: "Batch lookup of company registrations",
		Long: `Ytjbatch reads business identifiers (NNNNNNN-N, one per line) from a
file, resolves each against the business registry's open-data company API
and prints the normalized records.

With --output the records are also written as semicolon-delimited CSV, or
as an Excel workbook when the path ends in .xlsx.

Identifiers are processed strictly one at a time. A failed identifier is
reported as a warning and never aborts the rest of the batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], configPath, outputPath, format, logLevel)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (CSV or XLSX)")
	cmd.Flags().StringVar(&format, "format", FormatAuto, "Output file format (auto, csv, xlsx)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	cmd.AddCommand(configCmd())

	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the user config file with defaults",
		Long: `Creates ~/.config/ytjbatch/config.yaml populated with the default
settings if it does not already exist. An existing file is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			if err := config.NewLoader(logger).EnsureUserConfig(); err != nil {
				return fmt.Errorf("initialize user config: %w", err)
			}
			return nil
		},
	})

	return cmd
}

func run(inputPath, configPath, outputPath, format, logLevel string) error {
	// Configure logging
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.NewLoader(logger).Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	format, err = resolveFormat(format, outputPath)
	if err != nil {
		return err
	}

	// An unusable input file is the only fatal condition
	ids, err := input.ReadIdentifiers(inputPath)
	if err != nil {
		return err
	}
	logger.Info("Loaded identifiers", "path", inputPath, "count", len(ids))

	client := registry.NewClient(cfg.Registry.BaseURL,
		registry.WithHTTPClient(&http.Client{Timeout: cfg.Registry.Timeout}),
		registry.WithRetryConfig(registry.RetryConfig{
			MaxAttempts: cfg.Registry.MaxAttempts,
			Delay:       cfg.Registry.RetryDelay,
		}),
		registry.WithRateLimit(cfg.RateInterval()),
		registry.WithLogger(logger),
	)

	// Setup signal handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Records print as they resolve, not after the whole batch finishes
	runner := batch.NewRunner(client, logger, batch.WithRecordHandler(func(rec normalize.Record) {
		output.PrintRecord(os.Stdout, rec)
	}))
	result, err := runner.Run(ctx, ids)
	if err != nil {
		return err
	}

	if outputPath != "" {
		switch format {
		case FormatXLSX:
			err = output.WriteExcelFile(outputPath, result.Records)
		default:
			err = output.WriteCSVFile(outputPath, result.Records, cfg.DelimiterRune())
		}
		if err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
		logger.Info("Wrote output file",
			"path", outputPath,
			"format", format,
			"records", len(result.Records))
	}

	return nil
}

// resolveFormat turns the --format flag into a concrete format, inferring
// from the output path extension when set to auto.
func resolveFormat(format, outputPath string) (string, error) {
	switch strings.ToLower(format) {
	case FormatAuto:
		if strings.EqualFold(filepath.Ext(outputPath), ".xlsx") {
			return FormatXLSX, nil
		}
		return FormatCSV, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unknown format %q (supported: auto, csv, xlsx)", format)
	}
}
