package service

import (
	"context"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"
	"github.com/boddenberg/digtecnico-client-go/internal/endpoint"

	"go.uber.org/zap"
)

// ============================================================
// Refresh: POST /auth/refresh
// ============================================================

// RefreshToken trades the stored refresh token for a new access token.
// ok is false on any failure; the caller should then require a new login.
func (s *AuthService) RefreshToken(ctx context.Context) (token string, ok bool) {
	ctx, span := authTracer.Start(ctx, "AuthService.RefreshToken")
	defer span.End()

	refresh, found := s.store.Load(ctx, domain.KeyRefreshToken)
	if !found || refresh == "" {
		return "", false
	}

	env, err := s.client.Post(ctx, endpoint.AuthRefresh, domain.RefreshRequest{RefreshToken: refresh})
	if err != nil {
		s.logger.Warn("refresh: request failed", zap.Error(err))
		return "", false
	}
	if !env.Success {
		return "", false
	}

	resp, err := domain.DecodeData[domain.RefreshResponse](env)
	if err != nil {
		s.logger.Warn("refresh: malformed response", zap.Error(err))
		return "", false
	}
	token = resp.AccessTokenValue()
	if token == "" {
		s.logger.Warn("refresh: response carries no token")
		return "", false
	}

	if err := s.client.SetToken(ctx, token); err != nil {
		s.logger.Warn("refresh: persisting token failed", zap.Error(err))
		return "", false
	}
	if resp.RefreshToken != "" && resp.RefreshToken != refresh {
		if err := s.store.Save(ctx, domain.KeyRefreshToken, resp.RefreshToken); err != nil {
			s.logger.Warn("refresh: persisting rotated refresh token failed", zap.Error(err))
		}
	}

	s.logger.Debug("access token refreshed")
	return token, true
}
