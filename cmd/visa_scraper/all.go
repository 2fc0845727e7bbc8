package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/visa-scraper/internal/observability"
	"github.com/jonathan/visa-scraper/internal/pipeline"
)

func newAllCommand(global *globalOptions) *cobra.Command {
	var (
		outDir         string
		noImportScript bool
		ndjson         bool
	)

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Scrape every country in the registry and write the output files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := global.cfg
			if cmd.Flags().Changed("out") {
				cfg.OutDir = outDir
			}
			if cmd.Flags().Changed("no-import-script") {
				cfg.NoImportScript = noImportScript
			}
			if cmd.Flags().Changed("ndjson") {
				cfg.NDJSON = ndjson
			}

			printer := observability.NewPrinter(cmd.OutOrStdout())
			driver, closeDriver, err := newDriver(cmd.Context(), cfg, printer)
			if err != nil {
				return err
			}
			defer closeDriver()

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "🚀 Starting visa data scraping for %d countries...\n", driver.Registry.Len())
			start := time.Now()

			results, err := driver.RunAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("scrape aborted: %w", err)
			}

			written, err := driver.WriteOutputs(results, pipeline.OutputOptions{
				Dir:          cfg.OutDir,
				ImportScript: !cfg.NoImportScript,
				NDJSON:       cfg.NDJSON,
			})
			if err != nil {
				return fmt.Errorf("failed to write outputs: %w", err)
			}

			var failed []string
			for _, key := range driver.Registry.Keys() {
				if _, ok := results.Records[key]; !ok {
					failed = append(failed, key)
				}
			}
			printer.PrintRunSummary(observability.RunSummary{
				Total:     driver.Registry.Len(),
				Succeeded: results.Keys,
				Failed:    failed,
				Outputs:   written,
				Duration:  time.Since(start),
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
	cmd.Flags().BoolVar(&noImportScript, "no-import-script", false, "Do not generate sanity_import.js")
	cmd.Flags().BoolVar(&ndjson, "ndjson", false, "Also write visa_data.ndjson for 'sanity dataset import'")
	return cmd
}
