// Package order covers checkout, order history and the admin dashboard
// aggregates.
package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/fracki1010/edu-cart-app/internal/domain"
)

// OrderAPI is the slice of the remote client this service needs.
type OrderAPI interface {
	CreateOrder(ctx context.Context, shippingAddress string) (domain.Order, error)
	GetMyOrders(ctx context.Context) ([]domain.Order, error)
	GetAllOrders(ctx context.Context) ([]domain.Order, error)
}

// CartEmptier is the one cart operation checkout needs afterwards.
type CartEmptier interface {
	EmptyCart(ctx context.Context) error
}

type Service struct {
	api  OrderAPI
	cart CartEmptier
	log  *zap.Logger
}

func NewService(api OrderAPI, cart CartEmptier, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{api: api, cart: cart, log: log}
}

// Checkout places the order and then empties the published cart. The
// server already cleared its cart as part of order creation, which is why
// EmptyCart issues no network call in authenticated mode.
func (s *Service) Checkout(ctx context.Context, shippingAddress string) (domain.Order, error) {
	placed, err := s.api.CreateOrder(ctx, shippingAddress)
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.cart.EmptyCart(ctx); err != nil {
		// The order went through; a stale published cart is the only damage.
		s.log.Warn("failed to empty cart after checkout", zap.Error(err))
	}

	s.log.Info("order placed",
		zap.Int64("order_id", placed.ID),
		zap.Float64("total", placed.Total))
	return placed, nil
}

func (s *Service) History(ctx context.Context) ([]domain.Order, error) {
	return s.api.GetMyOrders(ctx)
}

func (s *Service) AdminAll(ctx context.Context) ([]domain.Order, error) {
	return s.api.GetAllOrders(ctx)
}
