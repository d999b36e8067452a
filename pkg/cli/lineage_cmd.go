package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"datamesh/internal/domain"
)

func newLineageCmd(client *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lineage",
		Short: "Track and inspect data lineage",
	}

	cmd.AddCommand(newLineageListCmd(client))
	cmd.AddCommand(newLineageRegisterCmd(client))
	cmd.AddCommand(newLineageUpstreamCmd(client))
	cmd.AddCommand(newLineageDownstreamCmd(client))

	return cmd
}

func lineageTable(cmd *cobra.Command, entries []domain.LineageEntry) error {
	if getOutputFormat(cmd) == "json" {
		return printJSON(cmd.OutOrStdout(), entries)
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			e.Source,
			e.Target,
			string(e.LineageType),
			fmt.Sprintf("%.2f", e.Confidence),
			e.Transformation,
		}
	}
	printTable(cmd.OutOrStdout(), []string{"SOURCE", "TARGET", "TYPE", "CONFIDENCE", "TRANSFORMATION"}, rows)
	return nil
}

func newLineageListCmd(client *Client) *cobra.Command {
	var (
		source      string
		target      string
		lineageType string
		limit       int
		offset      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List lineage entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := client.ListLineage(cmd.Context(), ListOptions{
				Limit:  limit,
				Offset: offset,
				Params: map[string]string{
					"source":       source,
					"target":       target,
					"lineage_type": lineageType,
				},
			})
			if err != nil {
				return err
			}
			return lineageTable(cmd, entries)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Filter by source product")
	cmd.Flags().StringVar(&target, "target", "", "Filter by target product")
	cmd.Flags().StringVar(&lineageType, "type", "", "Filter by lineage type (direct, derived, aggregated)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset for pagination")

	return cmd
}

func newLineageRegisterCmd(client *Client) *cobra.Command {
	var (
		transformation string
		lineageType    string
		confidence     float64
	)

	cmd := &cobra.Command{
		Use:   "register <source> <target>",
		Short: "Register a lineage edge between two products",
		Example: `  mesh lineage register orders orders_summary \
    --transformation "daily aggregation" --type aggregated --confidence 0.9`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := domain.NewLineageEntry()
			e.Source = args[0]
			e.Target = args[1]
			e.Transformation = transformation
			if lineageType != "" {
				e.LineageType = domain.LineageType(lineageType)
			}
			if cmd.Flags().Changed("confidence") {
				e.Confidence = confidence
			}

			created, err := client.RegisterLineage(cmd.Context(), e)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), created)
		},
	}

	cmd.Flags().StringVar(&transformation, "transformation", "", "Transformation description")
	cmd.Flags().StringVar(&lineageType, "type", "", "Lineage type (default direct)")
	cmd.Flags().Float64Var(&confidence, "confidence", 1.0, "Confidence in [0,1]")

	return cmd
}

func newLineageUpstreamCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "upstream <product>",
		Short: "Show direct upstream dependencies of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := client.Upstream(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return lineageTable(cmd, entries)
		},
	}
}

func newLineageDownstreamCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "downstream <product>",
		Short: "Show direct downstream dependents of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := client.Downstream(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return lineageTable(cmd, entries)
		},
	}
}
