package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fracki1010/edu-cart-app/internal/api"
)

var (
	filterCategories []string
	filterPriceMin   float64
	filterPriceMax   float64
	filterSort       string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := api.ProductFilter{
			Categories: filterCategories,
			PriceMin:   filterPriceMin,
			PriceMax:   filterPriceMax,
		}
		switch filterSort {
		case "":
		case "price_asc":
			filter.SortBy, filter.Order = "price", "asc"
		case "price_desc":
			filter.SortBy, filter.Order = "price", "desc"
		case "newest":
			filter.SortBy, filter.Order = "created_at", "desc"
		case "name_asc":
			filter.SortBy, filter.Order = "name", "asc"
		default:
			return fmt.Errorf("unknown sort %q (price_asc, price_desc, newest, name_asc)", filterSort)
		}

		products, err := app.catalog.List(cmd.Context(), filter)
		if err != nil {
			return err
		}
		fmt.Println(renderProducts(products))
		return nil
	},
}

var productShowCmd = &cobra.Command{
	Use:   "show <product-id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		p, err := app.catalog.Product(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Printf("%s (#%d)\n%s\nPrice: %.2f   Rating: %.1f   Category: %s   Stock: %d\n",
			p.Name, p.ID, p.Description, p.Price, p.Rating, p.Category, p.Stock)
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List product categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := app.catalog.Categories(cmd.Context())
		if err != nil {
			return err
		}
		for _, c := range categories {
			fmt.Printf("%d\t%s\n", c.ID, c.Name)
		}
		return nil
	},
}

func init() {
	productsCmd.Flags().StringSliceVar(&filterCategories, "category", nil, "filter by category (repeatable)")
	productsCmd.Flags().Float64Var(&filterPriceMin, "price-min", 0, "minimum price")
	productsCmd.Flags().Float64Var(&filterPriceMax, "price-max", 0, "maximum price")
	productsCmd.Flags().StringVar(&filterSort, "sort", "", "sort order: price_asc, price_desc, newest, name_asc")
	productsCmd.AddCommand(productShowCmd, categoriesCmd)
}
