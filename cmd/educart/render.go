package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/fracki1010/edu-cart-app/internal/cart"
	"github.com/fracki1010/edu-cart-app/internal/domain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Headers(headers...)
}

func renderProducts(products []domain.Product) string {
	t := newTable("ID", "Name", "Price", "Rating", "Category", "Stock")
	for _, p := range products {
		t.Row(
			strconv.FormatInt(p.ID, 10),
			p.Name,
			fmt.Sprintf("%.2f", p.Price),
			fmt.Sprintf("%.1f", p.Rating),
			p.Category,
			strconv.Itoa(p.Stock),
		)
	}
	return t.Render()
}

func renderCart(snap cart.Snapshot) string {
	if snap.Cart.IsEmpty() {
		return dimStyle.Render("Your cart is empty.")
	}
	t := newTable("Product", "Name", "Unit price", "Qty", "Subtotal")
	for _, item := range snap.Cart.Items {
		t.Row(
			strconv.FormatInt(item.ProductID, 10),
			item.Name,
			fmt.Sprintf("%.2f", item.UnitPrice),
			strconv.Itoa(item.Quantity),
			fmt.Sprintf("%.2f", item.UnitPrice*float64(item.Quantity)),
		)
	}
	return t.Render() + fmt.Sprintf("\nTotal: %.2f", snap.Cart.Total)
}

func renderOrders(orders []domain.Order) string {
	if len(orders) == 0 {
		return dimStyle.Render("No orders yet.")
	}
	t := newTable("ID", "Date", "Status", "Items", "Total")
	for _, o := range orders {
		t.Row(
			strconv.FormatInt(o.ID, 10),
			o.OrderDate.Format("2006-01-02 15:04"),
			string(o.Status),
			strconv.Itoa(len(o.Items)),
			fmt.Sprintf("%.2f", o.Total),
		)
	}
	return t.Render()
}
