package service

import (
	"context"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"
	"github.com/boddenberg/digtecnico-client-go/internal/endpoint"
	"github.com/boddenberg/digtecnico-client-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var ordersTracer = otel.Tracer("service/orders")

// OrderService wraps the service-order endpoints.
type OrderService struct {
	client port.APIClient
	logger *zap.Logger
}

func NewOrderService(client port.APIClient, logger *zap.Logger) *OrderService {
	return &OrderService{client: client, logger: logger}
}

// ListOrders returns one page of orders matching f.
func (s *OrderService) ListOrders(ctx context.Context, f domain.OrderFilter) (domain.Page[domain.Order], error) {
	ctx, span := ordersTracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()

	path := endpoint.NewQuery().
		SetInt("page", f.Page).
		SetInt("pageSize", f.PageSize).
		Set("status", f.Status).
		Set("tecnicoId", f.TecnicoID).
		With(endpoint.OrdersList)

	page, err := unwrap[domain.Page[domain.Order]](s.client.Get(ctx, path))
	if err != nil {
		s.logger.Warn("orders: list failed", zap.Error(err))
	}
	return page, err
}

func (s *OrderService) GetOrderDetail(ctx context.Context, id string) (*domain.OrderDetail, error) {
	ctx, span := ordersTracer.Start(ctx, "OrderService.GetOrderDetail")
	defer span.End()

	detail, err := unwrap[domain.OrderDetail](s.client.Get(ctx, endpoint.OrderDetail(id)))
	if err != nil {
		s.logger.Warn("orders: detail failed", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	return &detail, nil
}

// GetOpenOrders lists the orders still open for the logged-in technician.
func (s *OrderService) GetOpenOrders(ctx context.Context) ([]domain.Order, error) {
	return unwrap[[]domain.Order](s.client.Get(ctx, endpoint.OrdersOpen))
}

// GetClosedOrders lists closed orders, optionally bounded by date (YYYY-MM-DD).
func (s *OrderService) GetClosedOrders(ctx context.Context, f domain.ClosedOrderFilter) ([]domain.Order, error) {
	path := endpoint.NewQuery().
		Set("startDate", f.StartDate).
		Set("endDate", f.EndDate).
		With(endpoint.OrdersClosed)
	return unwrap[[]domain.Order](s.client.Get(ctx, path))
}

func (s *OrderService) CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	ctx, span := ordersTracer.Start(ctx, "OrderService.CreateOrder")
	defer span.End()

	created, err := unwrap[domain.Order](s.client.Post(ctx, endpoint.OrdersCreate, order))
	if err != nil {
		s.logger.Warn("orders: create failed", zap.Error(err))
		return nil, err
	}
	return &created, nil
}

// UpdateOrder sends a partial update; only the fields set in changes are sent.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, changes map[string]any) (*domain.Order, error) {
	updated, err := unwrap[domain.Order](s.client.Put(ctx, endpoint.OrderUpdate(id), changes))
	if err != nil {
		s.logger.Warn("orders: update failed", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	return &updated, nil
}

func (s *OrderService) CloseOrder(ctx context.Context, id string, req domain.CloseOrderRequest) (*domain.Order, error) {
	ctx, span := ordersTracer.Start(ctx, "OrderService.CloseOrder")
	defer span.End()

	closed, err := unwrap[domain.Order](s.client.Post(ctx, endpoint.OrderClose(id), req))
	if err != nil {
		s.logger.Warn("orders: close failed", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	return &closed, nil
}

func (s *OrderService) GetStatistics(ctx context.Context) (domain.OrderStatistics, error) {
	return unwrap[domain.OrderStatistics](s.client.Get(ctx, endpoint.OrdersStatistics))
}
