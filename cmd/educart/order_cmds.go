package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var shippingAddress string

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order from the current cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.sessions.Current().Authenticated() {
			return fmt.Errorf("checkout requires an account; run 'educart login' first")
		}
		if shippingAddress == "" {
			shippingAddress = prompt("Shipping address: ")
		}

		placed, err := app.orders.Checkout(cmd.Context(), shippingAddress)
		if err != nil {
			return err
		}
		fmt.Printf("Order #%d placed, total %.2f. Status: %s\n", placed.ID, placed.Total, placed.Status)
		return nil
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Show your order history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := app.orders.History(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(renderOrders(orders))
		return nil
	},
}

func init() {
	checkoutCmd.Flags().StringVar(&shippingAddress, "address", "", "shipping address")
}
