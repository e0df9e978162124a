// Package handler is the development mock of the field-service backend.
// It serves every endpoint the client consumes, mixing enveloped and bare
// responses the way the real deployments do.
package handler

import (
	"net/http"
	"time"

	"github.com/boddenberg/digtecnico-client-go/internal/infra/observability"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the mock backend router. Paths mirror the production
// API: /api for the root API and /api/mobile for the app endpoints.
func NewRouter(b *Backend, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(b))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", metrics.Handler())

	auth := JWTAuthMiddleware(b, logger)

	r.Route("/api", func(r chi.Router) {

		// root API
		r.With(auth).Get("/organizations/{organizationId}/branches/{branchId}", branchHandler(b, logger))

		r.Route("/mobile", func(r chi.Router) {

			// =============================================
			// Auth
			// =============================================
			r.Post("/auth/login", authLoginHandler(b, metrics, logger))
			r.Post("/auth/refresh", authRefreshHandler(b, logger))

			r.Group(func(r chi.Router) {
				r.Use(auth)

				r.Post("/auth/logout", authLogoutHandler(b, logger))
				r.Get("/auth/verify", authVerifyHandler(b, logger))

				// =============================================
				// Users
				// =============================================
				r.Get("/users/profile", profileHandler(b, logger))
				r.Put("/users/profile/update", updateProfileHandler(b, logger))
				r.Get("/users/technicians", techniciansHandler(b))

				// =============================================
				// Orders
				// =============================================
				r.Get("/orders", listOrdersHandler(b))
				r.Post("/orders", createOrderHandler(b, logger))
				r.Get("/orders/open", openOrdersHandler(b))
				r.Get("/orders/closed", closedOrdersHandler(b))
				r.Get("/orders/statistics", orderStatisticsHandler(b))
				r.Get("/orders/{id}", orderDetailHandler(b, logger))
				r.Put("/orders/{id}", updateOrderHandler(b, logger))
				r.Post("/orders/{id}/close", closeOrderHandler(b, logger))

				// =============================================
				// Clients & customers
				// =============================================
				r.Get("/clients", listClientsHandler(b))
				r.Get("/clients/search", searchClientsHandler(b))
				r.Get("/clients/{id}", clientDetailHandler(b, logger))
				r.Get("/customers", searchCustomersHandler(b))

				// =============================================
				// Warehouse
				// =============================================
				r.Get("/warehouse/stock", stockHandler(b))
				r.Put("/warehouse/stock/update", updateStockHandler(b, logger))
				r.Get("/warehouse/orders", stockOrdersHandler(b))
				r.Post("/warehouse/orders/create", createStockOrderHandler(b, logger))

				// =============================================
				// Dashboard
				// =============================================
				r.Get("/dashboard/stats", dashboardStatsHandler(b))
				r.Get("/dashboard/recent-orders", recentOrdersHandler(b))
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errNotFound.Error(), "Rota não encontrada")
	})

	return r
}

func healthzHandler(b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "healthy",
			"service":     "digtecnico-mockapi",
			"login_shape": b.LoginShape(),
			"checked_at":  time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
