package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the countries in the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := loadRegistry(global.cfg)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "KEY\tNAME\tSOURCES")
			for _, p := range registry.Profiles() {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%d\n", p.Key, p.DisplayName, len(p.SourceURLs))
			}
			return w.Flush()
		},
	}
}
