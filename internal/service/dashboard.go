package service

import (
	"context"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"
	"github.com/boddenberg/digtecnico-client-go/internal/endpoint"
	"github.com/boddenberg/digtecnico-client-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultRecentOrders = 10

var dashboardTracer = otel.Tracer("service/dashboard")

// DashboardService wraps the home-screen endpoints.
type DashboardService struct {
	client port.APIClient
	logger *zap.Logger
}

func NewDashboardService(client port.APIClient, logger *zap.Logger) *DashboardService {
	return &DashboardService{client: client, logger: logger}
}

func (s *DashboardService) GetStats(ctx context.Context) (domain.DashboardStats, error) {
	return unwrap[domain.DashboardStats](s.client.Get(ctx, endpoint.DashboardStats))
}

// GetRecentOrders returns the latest orders; limit <= 0 means 10.
func (s *DashboardService) GetRecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = defaultRecentOrders
	}
	path := endpoint.NewQuery().SetInt("limit", limit).With(endpoint.DashboardRecentOrders)
	return unwrap[[]domain.Order](s.client.Get(ctx, path))
}

// Overview loads stats and recent orders in parallel. The first failure
// cancels the other call and is returned.
func (s *DashboardService) Overview(ctx context.Context) (*domain.DashboardOverview, error) {
	ctx, span := dashboardTracer.Start(ctx, "DashboardService.Overview")
	defer span.End()

	var overview domain.DashboardOverview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.GetStats(gctx)
		if err != nil {
			return err
		}
		overview.Stats = stats
		return nil
	})
	g.Go(func() error {
		orders, err := s.GetRecentOrders(gctx, defaultRecentOrders)
		if err != nil {
			return err
		}
		overview.RecentOrders = orders
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Warn("dashboard: overview failed", zap.Error(err))
		return nil, err
	}
	return &overview, nil
}
