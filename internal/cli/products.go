package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/tijara/pkg/platform"
)

func newProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage catalog products",
	}
	cmd.AddCommand(
		newProductsListCmd(),
		newProductsGetCmd(),
		newProductsCreateCmd(),
		newProductsUpdateCmd(),
		newProductsDeleteCmd(),
	)
	return cmd
}

func newProductsListCmd() *cobra.Command {
	var filter platform.ProductFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := app.Client.ListProducts(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("list products: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tCREATED")
			for _, p := range page.Products {
				created := p.CreatedAt
				if t, err := time.Parse(time.RFC3339, p.CreatedAt); err == nil {
					created = humanize.Time(t)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%d\t%s\n",
					p.ID, p.Name, p.Category,
					humanize.CommafWithDigits(p.Price, 2), p.Currency,
					p.StockQuantity, created)
			}
			w.Flush()
			fmt.Printf("%d of %d products (page %d)\n", len(page.Products), page.Total, page.Page)
			return nil
		},
	}

	cmd.Flags().IntVar(&filter.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "Page size")
	cmd.Flags().StringVar(&filter.Category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&filter.Search, "search", "", "Search term")
	return cmd
}

func newProductsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Client.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get product: %w", err)
			}

			fmt.Printf("Product: %s\n", p.Name)
			fmt.Printf("  ID:       %s\n", p.ID)
			fmt.Printf("  Category: %s\n", p.Category)
			fmt.Printf("  Price:    %s %s\n", humanize.CommafWithDigits(p.Price, 2), p.Currency)
			fmt.Printf("  In stock: %v (%d)\n", p.InStock, p.StockQuantity)
			if p.Description != "" {
				fmt.Printf("  %s\n", p.Description)
			}
			return nil
		},
	}
}

func newProductsCreateCmd() *cobra.Command {
	var p platform.Product

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a product to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := app.Client.CreateProduct(cmd.Context(), p)
			if err != nil {
				return fmt.Errorf("create product: %w", err)
			}
			fmt.Printf("Product created: %s\n", created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Name, "name", "", "Product name")
	cmd.Flags().StringVar(&p.Description, "description", "", "Product description")
	cmd.Flags().StringVar(&p.Category, "category", "", "Product category")
	cmd.Flags().Float64Var(&p.Price, "price", 0, "Unit price")
	cmd.Flags().StringVar(&p.Currency, "currency", "USD", "Price currency")
	cmd.Flags().IntVar(&p.StockQuantity, "stock", 0, "Stock quantity")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("price")
	return cmd
}

func newProductsUpdateCmd() *cobra.Command {
	var p platform.Product

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := app.Client.UpdateProduct(cmd.Context(), args[0], p)
			if err != nil {
				return fmt.Errorf("update product: %w", err)
			}
			fmt.Printf("Product updated: %s\n", updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Name, "name", "", "Product name")
	cmd.Flags().StringVar(&p.Description, "description", "", "Product description")
	cmd.Flags().StringVar(&p.Category, "category", "", "Product category")
	cmd.Flags().Float64Var(&p.Price, "price", 0, "Unit price")
	cmd.Flags().IntVar(&p.StockQuantity, "stock", 0, "Stock quantity")
	return cmd
}

func newProductsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Client.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete product: %w", err)
			}
			fmt.Printf("Product deleted: %s\n", args[0])
			return nil
		},
	}
}
