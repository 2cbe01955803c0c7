// Package catalog is the product read/write path: listings pass through to
// the API, single-product lookups go through a short-lived cache with
// singleflight collapsing concurrent misses for the same product.
package catalog

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/fracki1010/edu-cart-app/internal/api"
	"github.com/fracki1010/edu-cart-app/internal/domain"
)

const productTTL = 5 * time.Minute

// ProductAPI is the slice of the remote client this service needs.
type ProductAPI interface {
	GetProducts(ctx context.Context, filter api.ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	CreateProduct(ctx context.Context, payload api.ProductPayload) (domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, payload api.ProductPayload) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	GetCategories(ctx context.Context) ([]domain.Category, error)
}

type cacheEntry struct {
	product   domain.Product
	expiresAt time.Time
}

type Service struct {
	api ProductAPI
	log *zap.Logger

	mu    sync.RWMutex
	cache map[int64]cacheEntry
	sfg   singleflight.Group // Prevents duplicate lookups for the same product
}

func NewService(client ProductAPI, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		api:   client,
		log:   log,
		cache: make(map[int64]cacheEntry),
	}
}

// List never hits the cache; filters and sort orders make the result set
// too variable to be worth keying.
func (s *Service) List(ctx context.Context, filter api.ProductFilter) ([]domain.Product, error) {
	return s.api.GetProducts(ctx, filter)
}

func (s *Service) Product(ctx context.Context, id int64) (domain.Product, error) {
	s.mu.RLock()
	entry, ok := s.cache[id]
	s.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.product, nil
	}

	v, err, _ := s.sfg.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		product, fetchErr := s.api.GetProduct(ctx, id)
		if fetchErr != nil {
			return nil, fetchErr
		}
		s.mu.Lock()
		s.cache[id] = cacheEntry{product: product, expiresAt: time.Now().Add(productTTL)}
		s.mu.Unlock()
		return product, nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return v.(domain.Product), nil
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.api.GetCategories(ctx)
}

func (s *Service) Create(ctx context.Context, payload api.ProductPayload) (domain.Product, error) {
	return s.api.CreateProduct(ctx, payload)
}

func (s *Service) Update(ctx context.Context, id int64, payload api.ProductPayload) (domain.Product, error) {
	product, err := s.api.UpdateProduct(ctx, id, payload)
	if err != nil {
		return domain.Product{}, err
	}
	s.invalidate(id)
	return product, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

func (s *Service) invalidate(id int64) {
	s.mu.Lock()
	delete(s.cache, id)
	s.mu.Unlock()
}
