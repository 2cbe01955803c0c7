package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecalculate(t *testing.T) {
	cart := Cart{Items: []LineItem{
		{ProductID: 1, UnitPrice: 9.5, Quantity: 2},
		{ProductID: 2, UnitPrice: 4.0, Quantity: 3},
	}}
	cart.Recalculate()
	assert.Equal(t, 31.0, cart.Total)

	cart.Items = nil
	cart.Recalculate()
	assert.Equal(t, 0.0, cart.Total)
}

func TestFind(t *testing.T) {
	cart := Cart{Items: []LineItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	}}

	found := cart.Find(2)
	assert.NotNil(t, found)
	assert.Equal(t, 3, found.Quantity)

	// Mutating the result mutates the cart.
	found.Quantity = 9
	assert.Equal(t, 9, cart.Items[1].Quantity)

	assert.Nil(t, cart.Find(99))
}

func TestIsEmpty(t *testing.T) {
	var cart Cart
	assert.True(t, cart.IsEmpty())
	cart.Items = []LineItem{{ProductID: 1}}
	assert.False(t, cart.IsEmpty())
}

func TestLowStock(t *testing.T) {
	assert.True(t, Product{Stock: 3, StockMin: 10}.LowStock())
	assert.True(t, Product{Stock: 10, StockMin: 10}.LowStock())
	assert.False(t, Product{Stock: 11, StockMin: 10}.LowStock())
}

func TestSessionAuthenticated(t *testing.T) {
	assert.False(t, Session{}.Authenticated())
	assert.False(t, Session{User: &User{ID: 1}}.Authenticated())
	assert.True(t, Session{Token: "tok"}.Authenticated())
}
