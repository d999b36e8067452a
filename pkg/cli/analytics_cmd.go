package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"datamesh/internal/domain"
)

func newAnalyticsCmd(client *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Catalog analytics",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "domains",
		Short: "Show product counts per domain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			counts, err := client.DomainAnalytics(cmd.Context())
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), counts)
			}

			domains := make([]string, 0, len(counts))
			for d := range counts {
				domains = append(domains, d)
			}
			sort.Strings(domains)
			rows := make([][]string, len(domains))
			for i, d := range domains {
				rows[i] = []string{d, strconv.Itoa(counts[d])}
			}
			printTable(cmd.OutOrStdout(), []string{"DOMAIN", "PRODUCTS"}, rows)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "lineage-stats",
		Short: "Show lineage relationship statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := client.LineageStats(cmd.Context())
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), stats)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "total entries: %d\n", stats.TotalEntries)
			fmt.Fprintf(out, "unique sources: %d\n", stats.UniqueSources)
			fmt.Fprintf(out, "unique targets: %d\n", stats.UniqueTargets)
			for _, lt := range domain.LineageTypes {
				fmt.Fprintf(out, "  %s: %d\n", lt, stats.ByType[lt])
			}
			return nil
		},
	})

	return cmd
}
