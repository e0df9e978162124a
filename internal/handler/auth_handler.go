package handler

import (
	"net/http"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"
	"github.com/boddenberg/digtecnico-client-go/internal/infra/observability"

	"go.uber.org/zap"
)

// ============================================================
// Autenticação
// ============================================================

func authLoginHandler(b *Backend, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "POST /mobile/auth/login")
		defer span.End()

		var cred domain.Credential
		if err := decodeBody(r, &cred); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if cred.Identifier == "" || cred.Secret == "" {
			handleServiceError(w, validationError("usuário e senha são obrigatórios"), logger)
			return
		}

		u, err := b.authenticate(cred.Identifier, cred.Secret)
		if err != nil {
			metrics.IncrLogin("failure")
			handleServiceError(w, err, logger)
			return
		}
		metrics.IncrLogin("success")

		access, err := b.signAccessToken(u)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		refresh := b.issueRefreshToken(u.record.ID)

		logger.Info("mock login",
			zap.String("user_id", u.record.ID),
			zap.String("shape", b.loginShape),
		)

		switch b.loginShape {
		case ShapeSnake:
			writeJSON(w, http.StatusOK, snakeLogin(u, access, refresh, "filial"))
		case ShapeFilial:
			writeJSON(w, http.StatusOK, snakeLogin(u, access, refresh, "filia"))
		default:
			writeEnvelope(w, http.StatusOK, camelLogin(u, access, refresh))
		}
	}
}

// camelLogin is the current payload: camelCase tokens, an organization
// block and an isAdmin flag.
func camelLogin(u mockUser, access, refresh string) map[string]any {
	rec := u.record
	return map[string]any{
		"accessToken":  access,
		"refreshToken": refresh,
		"user": map[string]any{
			"id":       rec.ID,
			"name":     rec.Name,
			"username": rec.Username,
			"email":    rec.Email,
			"phone":    rec.Phone,
			"location": rec.Location,
			"isAdmin":  u.isAdmin,
			"role":     string(rec.Role),
		},
		"organization": map[string]any{
			"id":   u.branch.ID,
			"name": u.branch.Nome,
		},
	}
}

// snakeLogin is the legacy payload: snake_case tokens, Portuguese user
// fields and the branch under branchKey ("filial", or "filia" on the
// oldest deployments).
func snakeLogin(u mockUser, access, refresh, branchKey string) map[string]any {
	rec := u.record
	return map[string]any{
		"access_token":  access,
		"refresh_token": refresh,
		"user": map[string]any{
			"funcionario_id": rec.ID,
			"nome":           rec.Name,
			"username":       rec.Username,
			"email":          rec.Email,
			"telefone":       rec.Phone,
			"localizacao":    rec.Location,
			"role":           string(rec.Role),
		},
		branchKey: map[string]any{
			"id":   u.branch.ID,
			"nome": u.branch.Nome,
		},
	}
}

func authRefreshHandler(b *Backend, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "POST /mobile/auth/refresh")
		defer span.End()

		var req domain.RefreshRequest
		if err := decodeBody(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if req.RefreshToken == "" {
			handleServiceError(w, validationError("refreshToken é obrigatório"), logger)
			return
		}

		access, refresh, err := b.rotate(req.RefreshToken)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		// legacy bare shape: {token, refreshToken}
		writeJSON(w, http.StatusOK, domain.RefreshResponse{Token: access, RefreshToken: refresh})
	}
}

func authLogoutHandler(b *Backend, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /mobile/auth/logout")
		defer span.End()

		userID := UserIDFromContext(ctx)
		revoked := b.revokeAll(userID)

		logger.Info("mock logout", zap.String("user_id", userID), zap.Int("revoked", revoked))
		writeJSON(w, http.StatusOK, envelope{Success: true, Data: nil, Message: "Logout realizado com sucesso"})
	}
}

func authVerifyHandler(b *Backend, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := UserIDFromContext(r.Context())
		u, ok := b.userByID(userID)
		if !ok {
			handleServiceError(w, unauthorizedError("Usuário não encontrado"), logger)
			return
		}
		writeEnvelope(w, http.StatusOK, domain.VerifyResponse{Valid: true, User: u.record})
	}
}
