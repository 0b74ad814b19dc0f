package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/mhodgson/phone-catalog-tracker/internal/api/client"
)

func productsCmd() *cobra.Command {
	productsRoot := &cobra.Command{
		Use:   "products",
		Short: "Query the product catalog",
		Long: "Query and inspect the resolved products held by a running\n" +
			"phone-catalog-tracker server.",
	}

	productsRoot.AddCommand(
		productsListCmd(),
		productsGetCmd(),
	)

	return productsRoot
}

func productsListCmd() *cobra.Command {
	var (
		model         string
		version       string
		colour        string
		availableOnly bool
		source        string
		limit         int
		offset        int
		orderBy       string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products with optional filters",
		Example: `  # List all products
  phone-catalog-tracker products list

  # Only available iPhones
  phone-catalog-tracker products list --model iphone --available

  # Sort by model with pagination
  phone-catalog-tracker products list --order-by model --limit 20 --offset 40`,
		RunE: func(_ *cobra.Command, _ []string) error {
			params := &apiclient.ListProductsParams{
				Model:   model,
				Version: version,
				Colour:  colour,
				Source:  source,
				Limit:   limit,
				Offset:  offset,
				OrderBy: orderBy,
			}
			if availableOnly {
				t := true
				params.Available = &t
			}

			c := newClient()
			resp, err := c.ListProducts(context.Background(), params)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Products) == 0 {
				fmt.Println("No products found.")
				return nil
			}

			fmt.Printf("Showing %d of %d products\n\n", len(resp.Products), resp.Total)
			return printProductsTable(resp.Products)
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "model filter")
	cmd.Flags().StringVar(&version, "version", "", "version filter")
	cmd.Flags().StringVar(&colour, "colour", "", "colour filter")
	cmd.Flags().BoolVar(&availableOnly, "available", false, "only products in stock")
	cmd.Flags().StringVar(&source, "source", "", "source page filter")
	cmd.Flags().IntVar(&limit, "limit", 50, "number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "result offset")
	cmd.Flags().
		StringVar(&orderBy, "order-by", "", "sort order (title, model, first_seen_at)")

	return cmd
}

func productsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <identity-key>",
		Short:   "Show product details",
		Example: `  phone-catalog-tracker products get "iphone:12ProMax:PacificBlue:131072"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			p, err := c.GetProduct(context.Background(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(p)
			}

			return printProductDetail(p)
		},
	}
}

func init() {
	rootCmd.AddCommand(productsCmd())
}
