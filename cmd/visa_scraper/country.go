package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/visa-scraper/internal/observability"
	"github.com/jonathan/visa-scraper/internal/pipeline"
	"github.com/jonathan/visa-scraper/internal/rendering"
)

func newCountryCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "country <key>",
		Short: "Scrape a single country and print its record without writing files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(strings.TrimSpace(args[0]))

			printer := observability.NewPrinter(cmd.OutOrStdout())
			driver, closeDriver, err := newDriver(cmd.Context(), global.cfg, printer)
			if err != nil {
				return err
			}
			defer closeDriver()

			record, err := driver.RunCountry(cmd.Context(), key)
			if errors.Is(err, pipeline.ErrUnknownCountry) {
				return fmt.Errorf("invalid country %q, choose from: %s", key, strings.Join(driver.Registry.Keys(), ", "))
			}
			if err != nil {
				return err
			}

			if global.cfg.Verbose {
				printer.PrintVisaRecord(record)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "📋 Results for %s:\n", key)
			return rendering.EncodeRecord(cmd.OutOrStdout(), record)
		},
	}
}
