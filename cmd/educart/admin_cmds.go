package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fracki1010/edu-cart-app/internal/api"
)

var (
	productName        string
	productDescription string
	productPrice       float64
	productRating      float64
	productCategoryID  int64
	productImageURL    string
	productStock       int
	productStockMin    int
	productSKU         string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Back-office commands (admin accounts only)",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Root PersistentPreRunE built the app; chain it explicitly since
		// cobra only runs the closest hook.
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		sess := app.sessions.Current()
		if sess.User == nil || !sess.User.IsAdmin() {
			return fmt.Errorf("admin commands require an admin session")
		}
		return nil
	},
}

var adminProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage the inventory",
}

var adminProductCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := productPayloadFromFlags(cmd)
		created, err := app.catalog.Create(cmd.Context(), payload)
		if err != nil {
			return err
		}
		fmt.Printf("Created product #%d %q.\n", created.ID, created.Name)
		return nil
	},
}

var adminProductUpdateCmd = &cobra.Command{
	Use:   "update <product-id>",
	Short: "Update a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		payload := productPayloadFromFlags(cmd)
		updated, err := app.catalog.Update(cmd.Context(), id, payload)
		if err != nil {
			return err
		}
		fmt.Printf("Updated product #%d %q.\n", updated.ID, updated.Name)
		return nil
	},
}

var adminProductDeleteCmd = &cobra.Command{
	Use:   "delete <product-id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		if err := app.catalog.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted product #%d.\n", id)
		return nil
	},
}

var adminOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Show orders across all users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := app.orders.AdminAll(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(renderOrders(orders))
		return nil
	},
}

var adminDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Revenue summary and low-stock products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := app.orders.Dashboard(cmd.Context(), app.catalog)
		if err != nil {
			return err
		}
		fmt.Printf("Orders: %d   Revenue: %.2f   Average order: %.2f\n",
			stats.TotalOrders, stats.TotalRevenue, stats.AverageOrder)
		if len(stats.LowStock) > 0 {
			fmt.Println("\nLow stock:")
			fmt.Println(renderProducts(stats.LowStock))
		}
		return nil
	},
}

// productPayloadFromFlags only includes flags the user actually set, so
// updates stay partial.
func productPayloadFromFlags(cmd *cobra.Command) api.ProductPayload {
	var payload api.ProductPayload
	flags := cmd.Flags()
	if flags.Changed("name") {
		payload.Name = &productName
	}
	if flags.Changed("description") {
		payload.Description = &productDescription
	}
	if flags.Changed("price") {
		payload.Price = &productPrice
	}
	if flags.Changed("rating") {
		payload.Rating = &productRating
	}
	if flags.Changed("category-id") {
		payload.CategoryID = &productCategoryID
	}
	if flags.Changed("image-url") {
		payload.ImageURL = &productImageURL
	}
	if flags.Changed("stock") {
		payload.Stock = &productStock
	}
	if flags.Changed("stock-min") {
		payload.StockMin = &productStockMin
	}
	if flags.Changed("sku") {
		payload.SKU = &productSKU
	}
	return payload
}

func init() {
	for _, c := range []*cobra.Command{adminProductCreateCmd, adminProductUpdateCmd} {
		c.Flags().StringVar(&productName, "name", "", "product name")
		c.Flags().StringVar(&productDescription, "description", "", "product description")
		c.Flags().Float64Var(&productPrice, "price", 0, "unit price")
		c.Flags().Float64Var(&productRating, "rating", 0, "rating")
		c.Flags().Int64Var(&productCategoryID, "category-id", 0, "category id")
		c.Flags().StringVar(&productImageURL, "image-url", "", "image URL")
		c.Flags().IntVar(&productStock, "stock", 0, "current stock")
		c.Flags().IntVar(&productStockMin, "stock-min", 0, "minimum stock")
		c.Flags().StringVar(&productSKU, "sku", "", "SKU")
	}

	adminProductsCmd.AddCommand(adminProductCreateCmd, adminProductUpdateCmd, adminProductDeleteCmd)
	adminCmd.AddCommand(adminProductsCmd, adminOrdersCmd, adminDashboardCmd)
}
