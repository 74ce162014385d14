package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wholesale/metrics"
	"wholesale/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const (
	// LowStockThreshold is the inclusive stock level at or below which a
	// product is reported as low stock.
	LowStockThreshold = 15
	// RecentOrdersLimit caps the retailer's recent order list.
	RecentOrdersLimit = 10
)

const (
	wholesalerDashboard = "wholesaler"
	retailerDashboard   = "retailer"
)

// ErrNoOwner is returned when an overview is requested for the zero id.
var ErrNoOwner = errors.New("overview requires a wholesaler or retailer id")

type OrderReader interface {
	Count(ctx context.Context, f models.OrderFilter) (int64, error)
	Totals(ctx context.Context, f models.OrderFilter) (models.OrderTotals, error)
	CountDistinctRetailers(ctx context.Context, f models.OrderFilter) (int64, error)
	Recent(ctx context.Context, f models.OrderFilter, limit int64) ([]models.Order, error)
}

type ProductReader interface {
	LowStock(ctx context.Context, wholesaler primitive.ObjectID, threshold int) ([]models.LowStockProduct, error)
}

// DashboardService computes the role-specific overviews. It holds no state
// between calls; every overview is recomputed from the store.
type DashboardService struct {
	orders   OrderReader
	products ProductReader
	metrics  *metrics.Registry
}

func NewDashboardService(orders OrderReader, products ProductReader, m *metrics.Registry) *DashboardService {
	return &DashboardService{orders: orders, products: products, metrics: m}
}

// WholesalerOverview runs the five wholesaler sub-queries concurrently. The
// first failure cancels the rest and no partial overview is returned.
func (s *DashboardService) WholesalerOverview(ctx context.Context, wholesalerID primitive.ObjectID) (models.WholesalerOverview, error) {
	if wholesalerID.IsZero() {
		return models.WholesalerOverview{}, ErrNoOwner
	}
	var out models.WholesalerOverview
	scope := models.OrderFilter{Wholesaler: wholesalerID}

	g, gctx := errgroup.WithContext(ctx)
	s.run(g, wholesalerDashboard, "totalOrders", func() (err error) {
		out.TotalOrders, err = s.orders.Count(gctx, scope)
		return err
	})
	s.run(g, wholesalerDashboard, "pendingOrders", func() (err error) {
		out.PendingOrders, err = s.orders.Count(gctx, models.OrderFilter{
			Wholesaler: wholesalerID,
			Statuses:   []models.OrderStatus{models.StatusPending},
		})
		return err
	})
	s.run(g, wholesalerDashboard, "totalRevenue", func() error {
		totals, err := s.orders.Totals(gctx, models.OrderFilter{
			Wholesaler: wholesalerID,
			Statuses:   models.RevenueStatuses(),
		})
		out.TotalRevenue = totals.Sum
		return err
	})
	s.run(g, wholesalerDashboard, "totalCustomers", func() (err error) {
		out.TotalCustomers, err = s.orders.CountDistinctRetailers(gctx, scope)
		return err
	})
	s.run(g, wholesalerDashboard, "lowStockProducts", func() (err error) {
		out.LowStockProducts, err = s.products.LowStock(gctx, wholesalerID, LowStockThreshold)
		return err
	})

	if err := g.Wait(); err != nil {
		return models.WholesalerOverview{}, err
	}
	if out.LowStockProducts == nil {
		out.LowStockProducts = []models.LowStockProduct{}
	}
	return out, nil
}

// RetailerOverview runs the retailer sub-queries concurrently. Order count and
// spend come from one grouped query over all statuses.
func (s *DashboardService) RetailerOverview(ctx context.Context, retailerID primitive.ObjectID) (models.RetailerOverview, error) {
	if retailerID.IsZero() {
		return models.RetailerOverview{}, ErrNoOwner
	}
	var out models.RetailerOverview
	scope := models.OrderFilter{Retailer: retailerID}

	g, gctx := errgroup.WithContext(ctx)
	s.run(g, retailerDashboard, "totals", func() error {
		totals, err := s.orders.Totals(gctx, scope)
		out.TotalOrders = totals.Count
		out.TotalSpent = totals.Sum
		return err
	})
	s.run(g, retailerDashboard, "pendingPayments", func() (err error) {
		out.PendingPayments, err = s.orders.Count(gctx, models.OrderFilter{
			Retailer: retailerID,
			Statuses: []models.OrderStatus{models.StatusPending},
		})
		return err
	})
	s.run(g, retailerDashboard, "recentOrders", func() (err error) {
		out.RecentOrders, err = s.orders.Recent(gctx, scope, RecentOrdersLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return models.RetailerOverview{}, err
	}
	if out.RecentOrders == nil {
		out.RecentOrders = []models.Order{}
	}
	for i := range out.RecentOrders {
		if out.RecentOrders[i].Items == nil {
			out.RecentOrders[i].Items = []models.OrderItem{}
		}
	}
	return out, nil
}

// run schedules one sub-query on g, timing it and naming it in the error.
// Each fn writes only its own fields of the result.
func (s *DashboardService) run(g *errgroup.Group, dashboard, query string, fn func() error) {
	g.Go(func() error {
		start := time.Now()
		err := fn()
		s.metrics.ObserveQuery(dashboard, query, time.Since(start), err)
		if err != nil {
			return fmt.Errorf("%s overview: %s: %w", dashboard, query, err)
		}
		return nil
	})
}
