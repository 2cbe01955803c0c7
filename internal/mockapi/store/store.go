// Package store holds server-side carts for the mock API, either in memory
// or in Redis.
package store

import (
	"context"
	"errors"
)

var ErrCartNotFound = errors.New("cart not found")

type Item struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type Cart struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Items  []Item `json:"items"`
}

// Find returns the item for productID, or nil.
func (c *Cart) Find(productID int64) *Item {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// CartStore defines cart persistence for the mock API. Consumers define
// this interface, not the implementations.
type CartStore interface {
	Get(ctx context.Context, userID int64) (*Cart, error)
	Upsert(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, userID int64) error
}
