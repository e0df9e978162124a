package service

import (
	"context"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"
	"github.com/boddenberg/digtecnico-client-go/internal/endpoint"
	"github.com/boddenberg/digtecnico-client-go/internal/port"

	"go.uber.org/zap"
)

// ClientService wraps the registered-clients endpoints.
type ClientService struct {
	client port.APIClient
	logger *zap.Logger
}

func NewClientService(client port.APIClient, logger *zap.Logger) *ClientService {
	return &ClientService{client: client, logger: logger}
}

func (s *ClientService) ListClients(ctx context.Context, f domain.ClientFilter) (domain.Page[domain.Client], error) {
	path := endpoint.NewQuery().
		SetInt("page", f.Page).
		SetInt("pageSize", f.PageSize).
		Set("search", f.Search).
		With(endpoint.ClientsList)
	return unwrap[domain.Page[domain.Client]](s.client.Get(ctx, path))
}

func (s *ClientService) GetClientDetail(ctx context.Context, id string) (*domain.Client, error) {
	c, err := unwrap[domain.Client](s.client.Get(ctx, endpoint.ClientDetail(id)))
	if err != nil {
		s.logger.Warn("clients: detail failed", zap.String("client_id", id), zap.Error(err))
		return nil, err
	}
	return &c, nil
}

func (s *ClientService) SearchClients(ctx context.Context, term string) ([]domain.Client, error) {
	path := endpoint.NewQuery().Set("q", term).With(endpoint.ClientsSearch)
	return unwrap[[]domain.Client](s.client.Get(ctx, path))
}

// CustomerService searches the billing customer base.
type CustomerService struct {
	client port.APIClient
	logger *zap.Logger
}

func NewCustomerService(client port.APIClient, logger *zap.Logger) *CustomerService {
	return &CustomerService{client: client, logger: logger}
}

// SearchCustomers returns the customers matching term. The endpoint may
// answer with a bare array; the client wraps it like any other payload.
func (s *CustomerService) SearchCustomers(ctx context.Context, term string) ([]domain.Customer, error) {
	path := endpoint.NewQuery().Set("search", term).With(endpoint.CustomersSearch)
	customers, err := unwrap[[]domain.Customer](s.client.Get(ctx, path))
	if err != nil {
		s.logger.Warn("customers: search failed", zap.String("term", term), zap.Error(err))
		return nil, err
	}
	return customers, nil
}
