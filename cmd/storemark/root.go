package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/storemark/storemark/version"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "storemark",
	Short: "schema.org JSON-LD generator and validator for storefront catalogs",
	Long: `Storemark fetches a storefront catalog and generates schema.org
structured-data (JSON-LD) markup for products, organizations, breadcrumbs,
and FAQs, optionally enhanced through an LLM provider.

Generated documents can be validated against schema.org structural rules
and Google Rich Results requirements, and existing pages can be analyzed
for the markup they already carry.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.storemark/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
