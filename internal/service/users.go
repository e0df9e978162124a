package service

import (
	"context"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"
	"github.com/boddenberg/digtecnico-client-go/internal/endpoint"
	"github.com/boddenberg/digtecnico-client-go/internal/port"

	"go.uber.org/zap"
)

// UserService wraps profile and technician endpoints.
type UserService struct {
	client port.APIClient
	logger *zap.Logger
}

func NewUserService(client port.APIClient, logger *zap.Logger) *UserService {
	return &UserService{client: client, logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context) (*domain.UserRecord, error) {
	u, err := unwrap[domain.UserRecord](s.client.Get(ctx, endpoint.UsersProfile))
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, changes domain.ProfileUpdate) (*domain.UserRecord, error) {
	u, err := unwrap[domain.UserRecord](s.client.Put(ctx, endpoint.UsersUpdateProfile, changes))
	if err != nil {
		s.logger.Warn("users: profile update failed", zap.Error(err))
		return nil, err
	}
	return &u, nil
}

func (s *UserService) ListTechnicians(ctx context.Context) ([]domain.UserRecord, error) {
	return unwrap[[]domain.UserRecord](s.client.Get(ctx, endpoint.UsersTechnicians))
}

// CompanyService reads organization data served from the root API.
type CompanyService struct {
	client port.APIClient
	logger *zap.Logger
}

func NewCompanyService(client port.APIClient, logger *zap.Logger) *CompanyService {
	return &CompanyService{client: client, logger: logger}
}

func (s *CompanyService) GetBranchInfo(ctx context.Context, organizationID, branchID string) (*domain.CompanyBranch, error) {
	b, err := unwrap[domain.CompanyBranch](s.client.Get(ctx, endpoint.CompanyBranch(organizationID, branchID), port.WithRootURL()))
	if err != nil {
		s.logger.Warn("company: branch lookup failed",
			zap.String("organization_id", organizationID),
			zap.String("branch_id", branchID),
			zap.Error(err),
		)
		return nil, err
	}
	return &b, nil
}
