package cart

import (
	"context"

	"github.com/fracki1010/edu-cart-app/internal/domain"
)

// CartAPI is the slice of the remote client the server-backed store needs.
type CartAPI interface {
	GetCart(ctx context.Context) (domain.Cart, error)
	AddCartItem(ctx context.Context, productID int64, quantity int) (domain.Cart, error)
	UpdateCartItem(ctx context.Context, productID int64, quantity int) (domain.Cart, error)
	RemoveCartItem(ctx context.Context, productID int64) (domain.Cart, error)
	ClearCart(ctx context.Context) error
}

// RemoteStore treats the server as the single source of truth. Mutations
// return the server's updated cart, but the service still resyncs with a
// full fetch afterwards.
type RemoteStore struct {
	api CartAPI
}

func NewRemoteStore(api CartAPI) *RemoteStore {
	return &RemoteStore{api: api}
}

func (s *RemoteStore) Get(ctx context.Context) (domain.Cart, error) {
	return s.api.GetCart(ctx)
}

func (s *RemoteStore) AddItem(ctx context.Context, item domain.LineItem) error {
	_, err := s.api.AddCartItem(ctx, item.ProductID, item.Quantity)
	return err
}

func (s *RemoteStore) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	_, err := s.api.UpdateCartItem(ctx, productID, quantity)
	return err
}

// RemoveItem issues the delete unconditionally; whether the product was in
// the cart at all is the server's concern.
func (s *RemoteStore) RemoveItem(ctx context.Context, productID int64) error {
	_, err := s.api.RemoveCartItem(ctx, productID)
	return err
}

func (s *RemoteStore) Clear(ctx context.Context) error {
	return s.api.ClearCart(ctx)
}
