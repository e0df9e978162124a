// Package service holds AuthService, which owns the login session lifecycle; the
// domain services are thin typed wrappers over the API client.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"
	"github.com/boddenberg/digtecnico-client-go/internal/endpoint"
	"github.com/boddenberg/digtecnico-client-go/internal/infra/observability"
	"github.com/boddenberg/digtecnico-client-go/internal/port"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var authTracer = otel.Tracer("service/auth")

// AuthService orchestrates login, logout and session queries, isolating
// callers from the backend's login payload variants.
type AuthService struct {
	client  port.APIClient
	store   port.TokenStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewAuthService creates a new auth service. metrics may be nil.
func NewAuthService(client port.APIClient, store port.TokenStore, metrics *observability.Metrics, logger *zap.Logger) *AuthService {
	return &AuthService{
		client:  client,
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// ============================================================
// Session queries
// ============================================================

// IsAuthenticated reports whether a non-empty access token is stored.
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	token, ok := s.store.Load(ctx, domain.KeyAccessToken)
	return ok && token != ""
}

// GetUserData returns the cached user, or nil when there is no session or
// the stored record is unreadable.
func (s *AuthService) GetUserData(ctx context.Context) *domain.UserRecord {
	raw, ok := s.store.Load(ctx, domain.KeyUser)
	if !ok || raw == "" {
		return nil
	}

	var user domain.UserRecord
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn("auth: stored user record is malformed", zap.Error(err))
		return nil
	}
	return &user
}

// TokenExpiry reads the exp claim of the stored access token without
// verifying its signature. ok is false for opaque or expiry-less tokens.
func (s *AuthService) TokenExpiry(ctx context.Context) (time.Time, bool) {
	token, ok := s.store.Load(ctx, domain.KeyAccessToken)
	if !ok || token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Verify asks the backend whether the current token is still accepted.
func (s *AuthService) Verify(ctx context.Context) (*domain.VerifyResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Verify")
	defer span.End()

	res, err := unwrap[domain.VerifyResponse](s.client.Get(ctx, endpoint.AuthVerify))
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *AuthService) countLogin(result string) {
	if s.metrics != nil {
		s.metrics.IncrLogin(result)
	}
}

// persistSession writes a decoded session. A partial write is rolled back
// so the store never holds half a session.
func (s *AuthService) persistSession(ctx context.Context, session *domain.Session) error {
	userJSON, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	// replaced wholesale: drop any refresh token left from an older session
	if err := s.client.ClearToken(ctx); err != nil {
		s.logger.Warn("auth: clearing previous session failed", zap.Error(err))
	}

	err = s.client.SetToken(ctx, session.AccessToken)
	if err == nil && session.RefreshToken != "" {
		err = s.store.Save(ctx, domain.KeyRefreshToken, session.RefreshToken)
	}
	if err == nil {
		err = s.store.Save(ctx, domain.KeyUser, string(userJSON))
	}
	if err != nil {
		_ = s.client.ClearToken(context.WithoutCancel(ctx))
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
