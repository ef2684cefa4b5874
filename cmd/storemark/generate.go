package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/storemark/storemark/internal/catalog"
	"github.com/storemark/storemark/internal/config"
	"github.com/storemark/storemark/internal/enhance"
	"github.com/storemark/storemark/internal/generate"
	"github.com/storemark/storemark/internal/providers"
)

var (
	generateOutput string
	generateNoAI   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate schema.org JSON-LD for the configured storefront",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := slog.Default()

		client := catalog.NewClient(catalog.ClientConfig{
			ShopDomain:  cfg.Shop.Domain,
			AccessToken: cfg.Shop.AccessToken,
			APIVersion:  cfg.Shop.APIVersion,
			Logger:      logger,
		})

		enhancer, err := buildEnhancer(cfg, logger)
		if err != nil {
			return err
		}

		gen, err := generate.NewGenerator(client, enhancer, generate.Options{
			MaxProducts:        cfg.Generation.MaxProducts,
			IncludeCollections: cfg.Generation.IncludeCollections,
			IncludeFAQ:         cfg.Generation.IncludeFAQ,
			PriceValidMonths:   cfg.Generation.PriceValidMonths,
		}, logger)
		if err != nil {
			return err
		}

		pkg, err := gen.Run(cmd.Context())
		if err != nil {
			return err
		}

		outPath := generateOutput
		if outPath == "" {
			outPath = cfg.Output.Path
		}
		if err := pkg.WriteFile(outPath); err != nil {
			return err
		}
		logger.Info("schemas written", "path", outPath, "products", pkg.TotalProducts)

		if cfg.Output.ValidateSchemas {
			report := generate.ValidateAll(pkg, false)
			printReport(cmd, report)
		}
		return nil
	},
}

// buildEnhancer wires the AI enhancer when enabled, otherwise the no-op.
func buildEnhancer(cfg *config.Config, logger *slog.Logger) (enhance.Enhancer, error) {
	if generateNoAI || !cfg.AI.Enabled {
		return enhance.Noop{}, nil
	}

	client := providers.NewOpenAIClient(providers.OpenAIConfig{
		APIKey:       cfg.AI.APIKey,
		BaseURL:      cfg.AI.BaseURL,
		DefaultModel: cfg.AI.Model,
		MaxRetries:   cfg.AI.MaxRetries,
	})
	return enhance.NewAIEnhancer(enhance.AIConfig{
		Client:  client,
		Limiter: providers.NewRateLimiter(cfg.AI.RequestsPerMinute),
		Logger:  logger,
	})
}

func printReport(cmd *cobra.Command, report *generate.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "validation: %d valid, %d invalid, %d errors, %d warnings\n",
		report.Summary.TotalValid, report.Summary.TotalInvalid,
		report.Summary.TotalErrors, report.Summary.TotalWarnings)
	for name, result := range report.Results {
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  %s: error: %s\n", name, e)
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  %s: warning: %s\n", name, w)
		}
	}
	for name, g := range report.Google {
		if !g.EligibleForRichResults {
			fmt.Fprintf(out, "  %s: not eligible for rich results\n", name)
		}
		for _, e := range g.Errors {
			fmt.Fprintf(out, "  %s: google: %s\n", name, e)
		}
	}
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output file (default from config)")
	generateCmd.Flags().BoolVar(&generateNoAI, "no-ai", false, "disable AI enhancement for this run")
}
