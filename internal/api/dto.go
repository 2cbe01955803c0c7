package api

import (
	"time"

	"github.com/fracki1010/edu-cart-app/internal/domain"
)

// Wire shapes are the server's snake_case representation; mappers translate
// them to domain types at the package boundary.

type productWire struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Rating      float64       `json:"rating"`
	ImageURL    string        `json:"image_url"`
	Category    *categoryWire `json:"category"`
	Stock       int           `json:"stock_current"`
	StockMin    int           `json:"stock_min"`
	SKU         string        `json:"sku,omitempty"`
}

type categoryWire struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toProduct(w productWire) domain.Product {
	p := domain.Product{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Price:       w.Price,
		Rating:      w.Rating,
		ImageURL:    w.ImageURL,
		Stock:       w.Stock,
		StockMin:    w.StockMin,
		SKU:         w.SKU,
	}
	if w.Category != nil {
		p.Category = w.Category.Name
	}
	return p
}

type cartWire struct {
	ID     int64          `json:"id"`
	UserID int64          `json:"user_id"`
	Total  float64        `json:"total"`
	Items  []cartItemWire `json:"items"`
}

type cartItemWire struct {
	CartID    int64 `json:"cart_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Product   struct {
		ID       int64   `json:"id"`
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		ImageURL string  `json:"image_url"`
	} `json:"product"`
}

// toCart normalizes the nested server shape and re-derives the total; the
// server's own total field is never trusted.
func toCart(w cartWire) domain.Cart {
	cart := domain.Cart{ID: w.ID, UserID: w.UserID, Items: make([]domain.LineItem, 0, len(w.Items))}
	for _, item := range w.Items {
		productID := item.Product.ID
		if productID == 0 {
			productID = item.ProductID
		}
		cart.Items = append(cart.Items, domain.LineItem{
			CartID:    w.ID,
			ProductID: productID,
			Name:      item.Product.Name,
			UnitPrice: item.Product.Price,
			Quantity:  item.Quantity,
			ImageURL:  item.Product.ImageURL,
		})
	}
	cart.Recalculate()
	return cart
}

type orderWire struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	OrderDate       time.Time       `json:"order_date"`
	Status          string          `json:"status"`
	ShippingAddress string          `json:"shipping_address"`
	TotalAmount     float64         `json:"total_amount"`
	Items           []orderItemWire `json:"items"`
}

type orderItemWire struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Product   struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		ImageURL string `json:"image_url"`
	} `json:"product"`
}

func toOrder(w orderWire) domain.Order {
	order := domain.Order{
		ID:              w.ID,
		UserID:          w.UserID,
		OrderDate:       w.OrderDate,
		Status:          domain.OrderStatus(w.Status),
		ShippingAddress: w.ShippingAddress,
		Total:           w.TotalAmount,
		Items:           make([]domain.OrderItem, 0, len(w.Items)),
	}
	for _, item := range w.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			ImageURL:    item.Product.ImageURL,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return order
}
