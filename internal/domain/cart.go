package domain

// LineItem is one product entry in a cart. Price and image are snapshotted
// from the product at the time the item is added.
type LineItem struct {
	CartID    int64   `json:"cartId"`
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url"`
}

// Cart holds the active cart for a session. ID 0 means no server cart has
// been assigned yet; UserID 0 means the cart belongs to a guest.
type Cart struct {
	ID     int64
	UserID int64
	Items  []LineItem
	Total  float64
}

// Recalculate re-derives Total from the current items. Total is never
// authoritative on its own; callers must recalculate after every mutation.
func (c *Cart) Recalculate() {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	c.Total = total
}

// Find returns the line item for the given product, or nil.
func (c *Cart) Find(productID int64) *LineItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
