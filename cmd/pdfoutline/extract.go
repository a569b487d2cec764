package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Extract the outline of a single PDF to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		log := newLogger(cfg)

		result, err := newProcessor(cfg, log).Process(args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}
