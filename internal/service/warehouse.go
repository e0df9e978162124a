package service

import (
	"context"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"
	"github.com/boddenberg/digtecnico-client-go/internal/endpoint"
	"github.com/boddenberg/digtecnico-client-go/internal/port"

	"go.uber.org/zap"
)

// WarehouseService wraps stock and material-request endpoints.
type WarehouseService struct {
	client port.APIClient
	logger *zap.Logger
}

func NewWarehouseService(client port.APIClient, logger *zap.Logger) *WarehouseService {
	return &WarehouseService{client: client, logger: logger}
}

func (s *WarehouseService) GetStock(ctx context.Context, f domain.StockFilter) ([]domain.Material, error) {
	path := endpoint.NewQuery().
		Set("search", f.Search).
		Set("category", f.Category).
		With(endpoint.WarehouseStock)
	return unwrap[[]domain.Material](s.client.Get(ctx, path))
}

func (s *WarehouseService) GetOrders(ctx context.Context, f domain.StockOrderFilter) ([]domain.StockOrder, error) {
	path := endpoint.NewQuery().
		Set("status", f.Status).
		Set("tecnicoId", f.TecnicoID).
		With(endpoint.WarehouseOrders)
	return unwrap[[]domain.StockOrder](s.client.Get(ctx, path))
}

func (s *WarehouseService) CreateOrder(ctx context.Context, req domain.StockOrderRequest) (*domain.StockOrder, error) {
	order, err := unwrap[domain.StockOrder](s.client.Post(ctx, endpoint.WarehouseCreateOrder, req))
	if err != nil {
		s.logger.Warn("warehouse: create order failed", zap.Int("items", len(req.Itens)), zap.Error(err))
		return nil, err
	}
	return &order, nil
}

func (s *WarehouseService) UpdateStock(ctx context.Context, req domain.StockUpdateRequest) (*domain.Material, error) {
	m, err := unwrap[domain.Material](s.client.Put(ctx, endpoint.WarehouseUpdateStock, req))
	if err != nil {
		s.logger.Warn("warehouse: update stock failed", zap.String("material_id", req.MaterialID), zap.Error(err))
		return nil, err
	}
	return &m, nil
}
