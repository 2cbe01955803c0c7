package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

type OrderItem struct {
	ProductID   int64
	ProductName string
	ImageURL    string
	Quantity    int
	UnitPrice   float64
}

type Order struct {
	ID              int64
	UserID          int64
	OrderDate       time.Time
	Status          OrderStatus
	ShippingAddress string
	Total           float64
	Items           []OrderItem
}
