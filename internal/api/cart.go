package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fracki1010/edu-cart-app/internal/domain"
)

type cartItemPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (c *Client) GetCart(ctx context.Context) (domain.Cart, error) {
	var w cartWire
	if err := c.do(ctx, http.MethodGet, "/cart", nil, nil, &w); err != nil {
		return domain.Cart{}, err
	}
	return toCart(w), nil
}

// AddCartItem merges (productID, quantity) into the server cart and returns
// the updated cart.
func (c *Client) AddCartItem(ctx context.Context, productID int64, quantity int) (domain.Cart, error) {
	var w cartWire
	if err := c.do(ctx, http.MethodPost, "/cart", nil, cartItemPayload{productID, quantity}, &w); err != nil {
		return domain.Cart{}, err
	}
	return toCart(w), nil
}

// UpdateCartItem replaces the quantity of an existing line item. Quantity
// semantics at or below zero are the server's call; nothing is rejected here.
func (c *Client) UpdateCartItem(ctx context.Context, productID int64, quantity int) (domain.Cart, error) {
	var w cartWire
	if err := c.do(ctx, http.MethodPut, "/cart", nil, cartItemPayload{productID, quantity}, &w); err != nil {
		return domain.Cart{}, err
	}
	return toCart(w), nil
}

func (c *Client) RemoveCartItem(ctx context.Context, productID int64) (domain.Cart, error) {
	var w cartWire
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/items/%d", productID), nil, nil, &w); err != nil {
		return domain.Cart{}, err
	}
	return toCart(w), nil
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart", nil, nil, nil)
}
