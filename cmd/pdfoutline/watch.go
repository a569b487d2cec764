package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/dgallion1/pdfoutline/internal/pipeline"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the input directory and process PDFs as they appear",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}
		log := newLogger(cfg)

		runner := pipeline.NewRunner(cfg, newProcessor(cfg, log), log)
		err := runner.Watch(cmd.Context())
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}
