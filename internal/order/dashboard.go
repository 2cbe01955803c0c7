package order

import (
	"context"

	"github.com/fracki1010/edu-cart-app/internal/api"
	"github.com/fracki1010/edu-cart-app/internal/domain"
)

// ProductLister feeds the low-stock table.
type ProductLister interface {
	List(ctx context.Context, filter api.ProductFilter) ([]domain.Product, error)
}

// DashboardStats is the admin back-office summary.
type DashboardStats struct {
	TotalOrders  int
	TotalRevenue float64
	AverageOrder float64
	LowStock     []domain.Product
}

// Dashboard aggregates all orders and the catalog into back-office numbers.
func (s *Service) Dashboard(ctx context.Context, products ProductLister) (DashboardStats, error) {
	orders, err := s.api.GetAllOrders(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{TotalOrders: len(orders)}
	for _, o := range orders {
		stats.TotalRevenue += o.Total
	}
	if stats.TotalOrders > 0 {
		stats.AverageOrder = stats.TotalRevenue / float64(stats.TotalOrders)
	}

	catalog, err := products.List(ctx, api.ProductFilter{})
	if err != nil {
		return DashboardStats{}, err
	}
	for _, p := range catalog {
		if p.LowStock() {
			stats.LowStock = append(stats.LowStock, p)
		}
	}
	return stats, nil
}
