package api

import (
	"context"
	"net/http"

	"github.com/fracki1010/edu-cart-app/internal/domain"
)

type createOrderPayload struct {
	ShippingAddress string `json:"shipping_address"`
}

// CreateOrder places an order from the server cart. The server clears the
// cart as part of order creation.
func (c *Client) CreateOrder(ctx context.Context, shippingAddress string) (domain.Order, error) {
	var w orderWire
	if err := c.do(ctx, http.MethodPost, "/orders", nil, createOrderPayload{shippingAddress}, &w); err != nil {
		return domain.Order{}, err
	}
	return toOrder(w), nil
}

func (c *Client) GetMyOrders(ctx context.Context) ([]domain.Order, error) {
	return c.getOrders(ctx, "/orders/my-orders")
}

// GetAllOrders is the admin view across every user.
func (c *Client) GetAllOrders(ctx context.Context) ([]domain.Order, error) {
	return c.getOrders(ctx, "/orders/admin/all")
}

func (c *Client) getOrders(ctx context.Context, path string) ([]domain.Order, error) {
	var wires []orderWire
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &wires); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(wires))
	for _, w := range wires {
		orders = append(orders, toOrder(w))
	}
	return orders, nil
}
