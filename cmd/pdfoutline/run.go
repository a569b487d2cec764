package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/pdfoutline/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process every PDF in the input directory",
	Long: `Run discovers all PDF files in the input directory and writes one JSON
outline per document into the output directory. Documents are processed in
parallel; a document that fails extraction is skipped and reported without
aborting the batch. The exit status is non-zero only when every document
failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}
		log := newLogger(cfg)

		runner := pipeline.NewRunner(cfg, newProcessor(cfg, log), log)
		summary, err := runner.Run(cmd.Context())
		if err != nil {
			return err
		}
		for _, f := range summary.Failures {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %s\n", f.File, f.Reason)
		}
		if summary.AllFailed() {
			return fmt.Errorf("all %d documents failed", summary.Failed)
		}
		return nil
	},
}
