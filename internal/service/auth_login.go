package service

import (
	"context"
	"fmt"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"
	"github.com/boddenberg/digtecnico-client-go/internal/endpoint"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Login: POST /auth/login
// ============================================================

// Login exchanges credentials for a session and persists it. Nothing is
// written to the token store unless the payload decodes into a complete
// session.
func (s *AuthService) Login(ctx context.Context, cred domain.Credential) (*domain.Session, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Login")
	defer span.End()
	span.SetAttributes(attribute.String("username", cred.Identifier))

	env, err := s.client.Post(ctx, endpoint.AuthLogin, cred)
	if err != nil {
		s.countLogin("failure")
		s.logger.Warn("login: request failed",
			zap.String("username", cred.Identifier),
			zap.Error(err),
		)
		return nil, err
	}
	if !env.Success {
		s.countLogin("failure")
		msg := env.Message
		if msg == "" {
			msg = "Falha ao realizar login"
		}
		return nil, domain.NewLoginFailedError(msg)
	}

	session, version, err := decodeLogin(env.Data)
	if err != nil {
		s.countLogin("failure")
		s.logger.Error("login: unusable payload",
			zap.String("username", cred.Identifier),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.persistSession(ctx, session); err != nil {
		s.countLogin("failure")
		return nil, err
	}

	s.countLogin("success")
	s.logger.Info("user logged in",
		zap.String("user_id", session.User.ID),
		zap.String("role", string(session.User.Role)),
		zap.String("payload_version", version),
	)
	return session, nil
}

// ============================================================
// Logout: POST /auth/logout
// ============================================================

// Logout notifies the backend and then always clears the local session.
// The remote failure is logged, never returned; only a failed local
// cleanup is reported.
func (s *AuthService) Logout(ctx context.Context) (err error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Logout")
	defer span.End()

	defer func() {
		if cerr := s.client.ClearToken(context.WithoutCancel(ctx)); cerr != nil {
			err = fmt.Errorf("clear session: %w", cerr)
		}
	}()

	if _, rerr := s.client.Post(ctx, endpoint.AuthLogout, nil); rerr != nil {
		s.logger.Warn("logout: remote call failed, clearing local session anyway", zap.Error(rerr))
		return nil
	}

	s.logger.Info("user logged out")
	return nil
}
