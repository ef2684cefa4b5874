package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storemark/storemark/internal/generate"
)

var (
	validateGoogle bool
	validateStrict bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <package.json>",
	Short: "Validate a generated schema package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := generate.ReadFile(args[0])
		if err != nil {
			return err
		}

		report := generate.ValidateAll(pkg, validateGoogle)
		printReport(cmd, report)

		if report.Summary.TotalInvalid > 0 {
			return fmt.Errorf("%d schemas failed validation", report.Summary.TotalInvalid)
		}
		if validateStrict && report.Summary.TotalWarnings > 0 {
			return fmt.Errorf("%d warnings in strict mode", report.Summary.TotalWarnings)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateGoogle, "google", false, "also check Google rich-results eligibility")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "treat warnings as failures")
}
