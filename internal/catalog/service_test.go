package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/fracki1010/edu-cart-app/internal/api"
	"github.com/fracki1010/edu-cart-app/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mockProductAPI struct {
	m        sync.Mutex
	products map[int64]domain.Product
	err      error

	getCalls  atomic.Int64
	getDelay  time.Duration
	listCalls int
}

func (m *mockProductAPI) GetProducts(context.Context, api.ProductFilter) ([]domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProductAPI) GetProduct(_ context.Context, id int64) (domain.Product, error) {
	m.getCalls.Add(1)
	if m.getDelay > 0 {
		time.Sleep(m.getDelay)
	}
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return domain.Product{}, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d not found", id)
	}
	return p, nil
}

func (m *mockProductAPI) CreateProduct(_ context.Context, payload api.ProductPayload) (domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return domain.Product{}, m.err
	}
	p := domain.Product{ID: int64(len(m.products) + 1)}
	if payload.Name != nil {
		p.Name = *payload.Name
	}
	m.products[p.ID] = p
	return p, nil
}

func (m *mockProductAPI) UpdateProduct(_ context.Context, id int64, payload api.ProductPayload) (domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return domain.Product{}, m.err
	}
	p := m.products[id]
	if payload.Name != nil {
		p.Name = *payload.Name
	}
	m.products[id] = p
	return p, nil
}

func (m *mockProductAPI) DeleteProduct(_ context.Context, id int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductAPI) GetCategories(context.Context) ([]domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []domain.Category{{ID: 1, Name: "Mugs"}}, nil
}

func newMockAPI() *mockProductAPI {
	return &mockProductAPI{products: map[int64]domain.Product{
		1: {ID: 1, Name: "mug", Price: 9.5},
		2: {ID: 2, Name: "poster", Price: 4.0},
	}}
}

func TestProduct_CacheHit(t *testing.T) {
	mockAPI := newMockAPI()
	sut := NewService(mockAPI, nil)
	ctx := context.Background()

	first, err := sut.Product(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "mug", first.Name)

	_, err = sut.Product(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), mockAPI.getCalls.Load(), "second lookup must be served from cache")
}

func TestProduct_ConcurrentMissesCollapse(t *testing.T) {
	mockAPI := newMockAPI()
	mockAPI.getDelay = 20 * time.Millisecond
	sut := NewService(mockAPI, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := sut.Product(context.Background(), 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1), mockAPI.getCalls.Load(), "concurrent misses for one product share one fetch")
}

func TestProduct_ErrorIsNotCached(t *testing.T) {
	mockAPI := newMockAPI()
	mockAPI.err = fmt.Errorf("server unavailable")
	sut := NewService(mockAPI, nil)

	_, err := sut.Product(context.Background(), 1)
	require.ErrorContains(t, err, "server unavailable")

	mockAPI.m.Lock()
	mockAPI.err = nil
	mockAPI.m.Unlock()

	p, err := sut.Product(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "mug", p.Name)
}

func TestList_BypassesCache(t *testing.T) {
	mockAPI := newMockAPI()
	sut := NewService(mockAPI, nil)
	ctx := context.Background()

	_, err := sut.List(ctx, api.ProductFilter{})
	require.NoError(t, err)
	_, err = sut.List(ctx, api.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, mockAPI.listCalls)
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	mockAPI := newMockAPI()
	sut := NewService(mockAPI, nil)
	ctx := context.Background()

	_, err := sut.Product(ctx, 1)
	require.NoError(t, err)

	newName := "enamel mug"
	_, err = sut.Update(ctx, 1, api.ProductPayload{Name: &newName})
	require.NoError(t, err)

	p, err := sut.Product(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "enamel mug", p.Name)
	assert.Equal(t, int64(2), mockAPI.getCalls.Load(), "update must drop the cached entry")
}

func TestDelete_InvalidatesCache(t *testing.T) {
	mockAPI := newMockAPI()
	sut := NewService(mockAPI, nil)
	ctx := context.Background()

	_, err := sut.Product(ctx, 2)
	require.NoError(t, err)

	require.NoError(t, sut.Delete(ctx, 2))
	_, err = sut.Product(ctx, 2)
	require.ErrorContains(t, err, "not found")
}
