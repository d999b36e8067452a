package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"datamesh/internal/domain"
)

func newProductsCmd(client *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage data products",
	}

	cmd.AddCommand(newProductsListCmd(client))
	cmd.AddCommand(newProductsGetCmd(client))
	cmd.AddCommand(newProductsRegisterCmd(client))
	cmd.AddCommand(newProductsUpdateCmd(client))
	cmd.AddCommand(newProductsDeleteCmd(client))

	return cmd
}

func newProductsListCmd(client *Client) *cobra.Command {
	var (
		domainFilter string
		statusFilter string
		tagFilter    string
		limit        int
		offset       int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered data products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := client.ListProducts(cmd.Context(), ListOptions{
				Limit:  limit,
				Offset: offset,
				Params: map[string]string{
					"domain": domainFilter,
					"status": statusFilter,
					"tag":    tagFilter,
				},
			})
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), products)
			}

			rows := make([][]string, len(products))
			for i, p := range products {
				rows[i] = []string{p.Name, p.Domain, p.Owner, string(p.Status), p.Version, strings.Join(p.Tags, ",")}
			}
			printTable(cmd.OutOrStdout(), []string{"NAME", "DOMAIN", "OWNER", "STATUS", "VERSION", "TAGS"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&domainFilter, "domain", "", "Filter by domain")
	cmd.Flags().StringVar(&statusFilter, "status", "", "Filter by status (active, deprecated, inactive)")
	cmd.Flags().StringVar(&tagFilter, "tag", "", "Filter by tag")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset for pagination")

	return cmd
}

func newProductsGetCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show a single data product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := client.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), product)
		},
	}
}

func newProductsRegisterCmd(client *Client) *cobra.Command {
	var (
		domainName  string
		owner       string
		description string
		schema      []string
		tags        []string
		status      string
		versionStr  string
	)

	cmd := &cobra.Command{
		Use:   "register <name>",
		Short: "Register a new data product",
		Example: `  mesh products register orders --domain sales --owner sales-team \
    --description "Raw order events" --schema order_id=int --schema amount=float \
    --tag core --token $MESH_TOKEN`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaMap, err := parseSchemaFlags(schema)
			if err != nil {
				return err
			}

			p := domain.NewDataProduct()
			p.Name = args[0]
			p.Domain = domainName
			p.Owner = owner
			p.Description = description
			p.Schema = schemaMap
			p.Tags = tags
			if status != "" {
				p.Status = domain.ProductStatus(status)
			}
			if versionStr != "" {
				p.Version = versionStr
			}

			created, err := client.RegisterProduct(cmd.Context(), p)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), created)
		},
	}

	cmd.Flags().StringVar(&domainName, "domain", "", "Owning domain")
	cmd.Flags().StringVar(&owner, "owner", "", "Owning team or person")
	cmd.Flags().StringVar(&description, "description", "", "Product description")
	cmd.Flags().StringArrayVar(&schema, "schema", nil, "Schema field as name=type (repeatable)")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().StringVar(&status, "status", "", "Lifecycle status (default active)")
	cmd.Flags().StringVar(&versionStr, "version", "", "Semantic version (default 1.0.0)")

	return cmd
}

func newProductsUpdateCmd(client *Client) *cobra.Command {
	var (
		description string
		status      string
		tags        []string
		schema      []string
	)

	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Update fields of an existing data product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var upd domain.DataProductUpdate
			if cmd.Flags().Changed("description") {
				upd.Description = &description
			}
			if cmd.Flags().Changed("status") {
				s := domain.ProductStatus(status)
				upd.Status = &s
			}
			if cmd.Flags().Changed("tag") {
				upd.Tags = &tags
			}
			if cmd.Flags().Changed("schema") {
				schemaMap, err := parseSchemaFlags(schema)
				if err != nil {
					return err
				}
				upd.Schema = &schemaMap
			}

			updated, err := client.UpdateProduct(cmd.Context(), args[0], upd)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), updated)
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&status, "status", "", "New lifecycle status")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Replacement tag set (repeatable)")
	cmd.Flags().StringArrayVar(&schema, "schema", nil, "Replacement schema field as name=type (repeatable)")

	return cmd
}

func newProductsDeleteCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a data product and its lineage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func parseSchemaFlags(pairs []string) (map[string]string, error) {
	schema := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, typ, ok := strings.Cut(pair, "=")
		if !ok || name == "" || typ == "" {
			return nil, fmt.Errorf("invalid schema field %q: expected name=type", pair)
		}
		schema[name] = typ
	}
	return schema, nil
}
