package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/storemark/storemark/internal/validate"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Analyze existing structured data on a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		analyzer := validate.NewAnalyzer(slog.Default())
		analysis, err := analyzer.AnalyzeURL(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}
