package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/pdfoutline/internal/config"
	"github.com/dgallion1/pdfoutline/internal/layout"
	"github.com/dgallion1/pdfoutline/internal/outline"
	"github.com/dgallion1/pdfoutline/internal/pipeline"
)

var (
	inputDir  string
	outputDir string
	workers   int
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "pdfoutline",
	Short: "Extract hierarchical outlines from PDF documents",
	Long: `pdfoutline extracts a document title and nested H1-H4 headers with page
numbers from PDF files by analyzing visual structure: font sizes, weight,
position and numbering conventions. It works across scripts (Latin,
Cyrillic, Arabic, CJK, Devanagari, Hebrew, Thai) without per-language
keyword lists, and emits one JSON outline per input document.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputDir, "input", "i", "", "input directory of PDFs (default $INPUT_DIR or ./input)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output directory for JSON results (default $OUTPUT_DIR or ./output)")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "worker count for batch processing (default $WORKER_COUNT or 4)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log verbosity: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration from the environment with flag
// overrides; the pipeline only ever sees the resolved values.
func loadConfig() config.Config {
	cfg := config.Load()
	if inputDir != "" {
		cfg.InputDir = inputDir
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if workers > 0 {
		cfg.WorkerCount = workers
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg
}

func newLogger(cfg config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
}

func newProcessor(cfg config.Config, log *slog.Logger) *pipeline.Processor {
	return &pipeline.Processor{
		Extractor: &layout.PDF{FallbackPdftotext: cfg.PDFFallbackPdftotext},
		Params:    outline.DefaultParams(),
		Log:       log,
	}
}
