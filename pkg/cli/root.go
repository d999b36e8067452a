// Package cli implements the mesh command-line interface for the data mesh
// catalog API.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		host   string
		token  string
		output string
	)

	client := NewClient(host, token)

	rootCmd := &cobra.Command{
		Use:           "mesh",
		Short:         "Data mesh catalog CLI",
		Long:          "Command-line interface for the data mesh catalog API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Precedence: flag > env > default.
			if !cmd.Flags().Changed("host") {
				if v := os.Getenv("MESH_HOST"); v != "" {
					host = v
				}
			}
			if !cmd.Flags().Changed("token") {
				if v := os.Getenv("MESH_TOKEN"); v != "" {
					token = v
				}
			}
			if output != "table" && output != "json" {
				return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
			}
			client.BaseURL = host
			client.Token = token
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8000", "API host URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "API key or JWT for authentication")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")

	rootCmd.AddCommand(newProductsCmd(client))
	rootCmd.AddCommand(newLineageCmd(client))
	rootCmd.AddCommand(newAnalyticsCmd(client))
	rootCmd.AddCommand(newHealthCmd(client))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mesh %s\n", version)
		},
	}
}

func newHealthCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			health, err := client.Health(cmd.Context())
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), health)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "status: %s\nversion: %s\nproducts: %d\nlineage entries: %d\n",
				health.Status, health.Version, health.TotalProducts, health.TotalLineageEntries)
			return nil
		},
	}
}
