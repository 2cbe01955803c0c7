// Package cart presents one cart interface over two backing stores: local
// storage for guests and the remote API for authenticated users. The
// reconciliation service picks the store from session state and migrates
// guest items into the server cart the first time a fetch happens under an
// authenticated session.
package cart

import (
	"context"

	"github.com/fracki1010/edu-cart-app/internal/domain"
)

// Store is the backing-store capability the service dispatches to.
// Consumers define this interface, not the implementations.
type Store interface {
	Get(ctx context.Context) (domain.Cart, error)
	AddItem(ctx context.Context, item domain.LineItem) error
	UpdateQuantity(ctx context.Context, productID int64, quantity int) error
	RemoveItem(ctx context.Context, productID int64) error
	Clear(ctx context.Context) error
}
