package cart

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fracki1010/edu-cart-app/internal/domain"
)

type mockSessions struct {
	session domain.Session
}

func (m *mockSessions) Current() domain.Session { return m.session }

func guestSessions() *mockSessions { return &mockSessions{} }

func authSessions() *mockSessions {
	return &mockSessions{session: domain.Session{
		User:  &domain.User{ID: 7, Username: "demo"},
		Token: "tok",
	}}
}

type mockStore struct {
	m     sync.Mutex
	cart  domain.Cart
	err   error
	calls struct {
		get, add, update, remove, clear int
	}
	failProducts map[int64]error
}

func (m *mockStore) Get(context.Context) (domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls.get++
	if m.err != nil {
		return domain.Cart{}, m.err
	}
	cart := m.cart
	cart.Items = append([]domain.LineItem(nil), m.cart.Items...)
	cart.Recalculate()
	return cart, nil
}

func (m *mockStore) AddItem(_ context.Context, item domain.LineItem) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls.add++
	if m.err != nil {
		return m.err
	}
	if failErr, ok := m.failProducts[item.ProductID]; ok {
		return failErr
	}
	if existing := m.cart.Find(item.ProductID); existing != nil {
		existing.Quantity += item.Quantity
		return nil
	}
	m.cart.Items = append(m.cart.Items, item)
	return nil
}

func (m *mockStore) UpdateQuantity(_ context.Context, productID int64, quantity int) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls.update++
	if m.err != nil {
		return m.err
	}
	if item := m.cart.Find(productID); item != nil {
		item.Quantity = quantity
	}
	return nil
}

func (m *mockStore) RemoveItem(_ context.Context, productID int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls.remove++
	if m.err != nil {
		return m.err
	}
	kept := m.cart.Items[:0]
	for _, item := range m.cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	m.cart.Items = kept
	return nil
}

func (m *mockStore) Clear(context.Context) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls.clear++
	if m.err != nil {
		return m.err
	}
	m.cart.Items = nil
	return nil
}

func (m *mockStore) addCalls() int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.calls.add
}

func item(productID int64, name string, price float64, qty int) domain.LineItem {
	return domain.LineItem{ProductID: productID, Name: name, UnitPrice: price, Quantity: qty}
}

func TestFetch_Guest_ReadsLocalOnly(t *testing.T) {
	local := &mockStore{cart: domain.Cart{Items: []domain.LineItem{item(1, "mug", 9.5, 2)}}}
	remote := &mockStore{}

	sut := NewService(guestSessions(), local, remote, nil)
	cart, err := sut.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, len(cart.Items))
	assert.Equal(t, 19.0, cart.Total)
	assert.Equal(t, 0, remote.calls.get, "guest fetch must not touch the server")

	snap := sut.Snapshot()
	assert.Equal(t, cart, snap.Cart)
	assert.Empty(t, snap.Err)
}

func TestFetch_Authenticated_MigratesThenGets(t *testing.T) {
	local := &mockStore{cart: domain.Cart{Items: []domain.LineItem{
		item(1, "mug", 9.5, 2),
		item(2, "poster", 4.0, 1),
		item(3, "shirt", 20.0, 1),
	}}}
	remote := &mockStore{}

	sut := NewService(authSessions(), local, remote, nil)
	cart, err := sut.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, remote.addCalls(), "one add per guest item")
	assert.Equal(t, 1, remote.calls.get, "exactly one fetch after migration")
	assert.Equal(t, 1, local.calls.clear, "guest snapshot is deleted after migration")
	assert.Equal(t, 3, len(cart.Items))
	assert.Equal(t, int64(7), cart.UserID)
	assert.Empty(t, sut.Snapshot().FailedMerges)
}

func TestFetch_Authenticated_EmptyGuestCart_SkipsMigration(t *testing.T) {
	local := &mockStore{}
	remote := &mockStore{cart: domain.Cart{Items: []domain.LineItem{item(5, "mug", 9.5, 1)}}}

	sut := NewService(authSessions(), local, remote, nil)
	cart, err := sut.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, remote.addCalls())
	assert.Equal(t, 0, local.calls.clear, "nothing to clear when guest cart is empty")
	assert.Equal(t, 1, len(cart.Items))
}

func TestFetch_Authenticated_PartialMigrationFailure(t *testing.T) {
	local := &mockStore{cart: domain.Cart{Items: []domain.LineItem{
		item(1, "mug", 9.5, 2),
		item(2, "poster", 4.0, 1),
	}}}
	remote := &mockStore{
		failProducts: map[int64]error{2: fmt.Errorf("out of stock")},
	}

	sut := NewService(authSessions(), local, remote, nil)
	_, err := sut.Fetch(context.Background())
	require.NoError(t, err, "partial migration failure is not a fetch failure")

	assert.Equal(t, 2, remote.addCalls(), "a failed sibling must not abort the others")
	assert.Equal(t, 1, local.calls.clear, "guest snapshot is deleted even after failures")
	assert.Equal(t, []string{"poster"}, sut.Snapshot().FailedMerges)
}

func TestFetch_RemoteError_KeepsLastKnownCart(t *testing.T) {
	local := &mockStore{}
	remote := &mockStore{cart: domain.Cart{Items: []domain.LineItem{item(1, "mug", 9.5, 1)}}}

	sut := NewService(authSessions(), local, remote, nil)
	first, err := sut.Fetch(context.Background())
	require.NoError(t, err)

	remote.err = fmt.Errorf("server unavailable")
	_, err = sut.Fetch(context.Background())
	require.ErrorContains(t, err, "server unavailable")

	snap := sut.Snapshot()
	assert.Equal(t, "server unavailable", snap.Err)
	assert.Equal(t, first, snap.Cart, "error keeps the last known cart")
}

func TestAddItem_Guest_UpdatesLocalAndPublishes(t *testing.T) {
	local := &mockStore{}
	remote := &mockStore{}

	var published []Snapshot
	sut := NewService(guestSessions(), local, remote, nil)
	sut.Subscribe(func(s Snapshot) { published = append(published, s) })

	err := sut.AddItem(context.Background(), domain.Product{ID: 1, Name: "mug", Price: 9.5}, 2)
	require.NoError(t, err)

	assert.Equal(t, 0, remote.addCalls())
	require.Equal(t, 1, len(published))
	assert.Equal(t, 2, published[0].Cart.Items[0].Quantity)
	assert.Equal(t, 19.0, published[0].Cart.Total)
}

func TestAddItem_Authenticated_Resyncs(t *testing.T) {
	local := &mockStore{}
	remote := &mockStore{}

	sut := NewService(authSessions(), local, remote, nil)
	err := sut.AddItem(context.Background(), domain.Product{ID: 1, Name: "mug", Price: 9.5}, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, remote.addCalls())
	assert.Equal(t, 1, remote.calls.get, "server mutation is followed by a full resync")
	assert.Equal(t, int64(1), sut.Snapshot().Cart.Items[0].ProductID)
}

func TestAddItem_RemoteError_NoSpeculativeUpdate(t *testing.T) {
	local := &mockStore{}
	remote := &mockStore{err: fmt.Errorf("server unavailable")}

	sut := NewService(authSessions(), local, remote, nil)
	err := sut.AddItem(context.Background(), domain.Product{ID: 1, Name: "mug", Price: 9.5}, 1)
	require.ErrorContains(t, err, "server unavailable")
	assert.Empty(t, sut.Snapshot().Cart.Items)
	assert.Equal(t, "server unavailable", sut.Snapshot().Err)
}

func TestUpdateItem_Guest_NoQuantityFloor(t *testing.T) {
	local := &mockStore{cart: domain.Cart{Items: []domain.LineItem{item(1, "mug", 9.5, 3)}}}
	remote := &mockStore{}

	sut := NewService(guestSessions(), local, remote, nil)
	err := sut.UpdateItem(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Equal(t, 1, len(local.cart.Items), "quantity zero is stored, not treated as removal")
	assert.Equal(t, 0, local.cart.Items[0].Quantity)
}

func TestRemoveItem_Guest_Unconditional(t *testing.T) {
	local := &mockStore{cart: domain.Cart{Items: []domain.LineItem{
		item(1, "mug", 9.5, 3),
		item(2, "poster", 4.0, 1),
	}}}
	remote := &mockStore{}

	sut := NewService(guestSessions(), local, remote, nil)
	require.NoError(t, sut.RemoveItem(context.Background(), 1))
	require.Equal(t, 1, len(sut.Snapshot().Cart.Items))
	assert.Equal(t, int64(2), sut.Snapshot().Cart.Items[0].ProductID)

	// Removing an absent product is not an error.
	require.NoError(t, sut.RemoveItem(context.Background(), 99))
}

func TestEmptyCart_Guest_ClearsLocal(t *testing.T) {
	local := &mockStore{cart: domain.Cart{Items: []domain.LineItem{item(1, "mug", 9.5, 3)}}}
	remote := &mockStore{}

	sut := NewService(guestSessions(), local, remote, nil)
	require.NoError(t, sut.EmptyCart(context.Background()))
	assert.Equal(t, 1, local.calls.clear)
	assert.Empty(t, sut.Snapshot().Cart.Items)
}

func TestEmptyCart_Authenticated_NoServerCall(t *testing.T) {
	local := &mockStore{}
	remote := &mockStore{cart: domain.Cart{Items: []domain.LineItem{item(1, "mug", 9.5, 3)}}}

	sut := NewService(authSessions(), local, remote, nil)
	require.NoError(t, sut.EmptyCart(context.Background()))

	assert.Equal(t, 0, remote.calls.clear, "order placement clears the server cart, not this call")
	assert.Equal(t, 0, remote.calls.get)
	assert.Empty(t, sut.Snapshot().Cart.Items)
	assert.Equal(t, int64(7), sut.Snapshot().Cart.UserID)
}

func TestSubscribe_NotifiedOnEveryPublish(t *testing.T) {
	local := &mockStore{}
	remote := &mockStore{}

	var count int
	sut := NewService(guestSessions(), local, remote, nil)
	sut.Subscribe(func(Snapshot) { count++ })

	ctx := context.Background()
	_, _ = sut.Fetch(ctx)
	_ = sut.AddItem(ctx, domain.Product{ID: 1, Name: "mug", Price: 9.5}, 1)
	_ = sut.EmptyCart(ctx)
	assert.Equal(t, 3, count)
}
