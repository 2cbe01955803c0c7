package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var addQuantity int

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show and edit the shopping cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := app.carts.Fetch(cmd.Context()); err != nil {
			return err
		}
		fmt.Println(renderCart(app.carts.Snapshot()))
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		if addQuantity < 1 {
			return fmt.Errorf("quantity must be at least 1")
		}

		ctx := cmd.Context()
		product, err := app.catalog.Product(ctx, id)
		if err != nil {
			return err
		}
		if err := app.carts.AddItem(ctx, product, addQuantity); err != nil {
			return err
		}
		fmt.Printf("Added %d x %s.\n", addQuantity, product.Name)
		fmt.Println(renderCart(app.carts.Snapshot()))
		return nil
	},
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <product-id> <quantity>",
	Short: "Set the quantity of a cart line",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}

		if err := app.carts.UpdateItem(cmd.Context(), id, quantity); err != nil {
			return err
		}
		fmt.Println(renderCart(app.carts.Snapshot()))
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a product from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		if err := app.carts.RemoveItem(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println(renderCart(app.carts.Snapshot()))
		return nil
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.carts.EmptyCart(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Cart emptied.")
		return nil
	},
}

func init() {
	cartAddCmd.Flags().IntVarP(&addQuantity, "quantity", "q", 1, "quantity to add")
	cartCmd.AddCommand(cartAddCmd, cartUpdateCmd, cartRemoveCmd, cartClearCmd)
}
