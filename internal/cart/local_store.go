package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fracki1010/edu-cart-app/internal/domain"
	"github.com/fracki1010/edu-cart-app/internal/localstore"
)

// LocalStore holds the guest cart as a JSON list of line items under a
// fixed local-storage key. All operations are synchronous, no network.
type LocalStore struct {
	kv *localstore.Store
}

func NewLocalStore(kv *localstore.Store) *LocalStore {
	return &LocalStore{kv: kv}
}

func (s *LocalStore) Get(context.Context) (domain.Cart, error) {
	items, err := s.load()
	if err != nil {
		return domain.Cart{}, err
	}
	cart := domain.Cart{Items: items}
	cart.Recalculate()
	return cart, nil
}

// AddItem increments the quantity of an existing line for the same product,
// or appends a new line.
func (s *LocalStore) AddItem(_ context.Context, item domain.LineItem) error {
	items, err := s.load()
	if err != nil {
		return err
	}
	merged := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}
	return s.save(items)
}

// UpdateQuantity replaces the quantity of the matching line. There is no
// minimum-quantity floor here; zero and negative values are stored as-is.
// An unknown product is a silent no-op.
func (s *LocalStore) UpdateQuantity(_ context.Context, productID int64, quantity int) error {
	items, err := s.load()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
		}
	}
	return s.save(items)
}

func (s *LocalStore) RemoveItem(_ context.Context, productID int64) error {
	items, err := s.load()
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	return s.save(kept)
}

// Clear deletes the guest snapshot key entirely.
func (s *LocalStore) Clear(context.Context) error {
	return s.kv.Delete(localstore.KeyGuestCart)
}

func (s *LocalStore) load() ([]domain.LineItem, error) {
	raw, ok, err := s.kv.Get(localstore.KeyGuestCart)
	if err != nil {
		return nil, fmt.Errorf("failed to read guest cart: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var items []domain.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to decode guest cart: %w", err)
	}
	return items, nil
}

func (s *LocalStore) save(items []domain.LineItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode guest cart: %w", err)
	}
	return s.kv.Put(localstore.KeyGuestCart, string(raw))
}
