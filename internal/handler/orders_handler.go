package handler

import (
	"net/http"
	"strconv"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Ordens de serviço
// ============================================================

// currentUser resolves the authenticated user of r.
func currentUser(b *Backend, r *http.Request) (domain.UserRecord, error) {
	u, ok := b.userByID(UserIDFromContext(r.Context()))
	if !ok {
		return domain.UserRecord{}, unauthorizedError("Usuário não encontrado")
	}
	return u.record, nil
}

func listOrdersHandler(b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, pageSize := parsePagination(r)

		all := b.listOrders(q.Get("status"), q.Get("tecnicoId"))
		items, totalPages := paginate(all, page, pageSize)

		writeEnvelope(w, http.StatusOK, domain.Page[domain.Order]{
			Data:       items,
			Total:      len(all),
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		})
	}
}

// openOrdersHandler answers bare, like the older endpoints.
func openOrdersHandler(b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.openOrders())
	}
}

func closedOrdersHandler(b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		writeEnvelope(w, http.StatusOK, b.closedOrders(q.Get("startDate"), q.Get("endDate")))
	}
}

func orderStatisticsHandler(b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, b.statistics(UserIDFromContext(r.Context())))
	}
}

func orderDetailHandler(b *Backend, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /mobile/orders/{id}")
		defer span.End()

		id := chi.URLParam(r, "id")
		span.SetAttributes(attribute.String("order.id", id))

		detail, err := b.orderDetail(id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeEnvelope(w, http.StatusOK, detail)
	}
}

func createOrderHandler(b *Backend, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := currentUser(b, r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var req domain.Order
		if err := decodeBody(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		order, err := b.createOrder(req, user)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeEnvelope(w, http.StatusCreated, order)
	}
}

func updateOrderHandler(b *Backend, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := currentUser(b, r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var changes map[string]any
		if err := decodeBody(r, &changes); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		order, err := b.updateOrder(chi.URLParam(r, "id"), changes, user)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeEnvelope(w, http.StatusOK, order)
	}
}

func closeOrderHandler(b *Backend, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "POST /mobile/orders/{id}/close")
		defer span.End()

		user, err := currentUser(b, r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var req domain.CloseOrderRequest
		if err := decodeBody(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		order, err := b.closeOrder(chi.URLParam(r, "id"), req, user)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		logger.Info("order closed", zap.String("order_id", order.ID), zap.String("user_id", user.ID))
		writeEnvelope(w, http.StatusOK, order)
	}
}

// ============================================================
// Dashboard
// ============================================================

func dashboardStatsHandler(b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, b.dashboardStats(UserIDFromContext(r.Context())))
	}
}

func recentOrdersHandler(b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 10
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 50 {
			limit = v
		}
		writeJSON(w, http.StatusOK, b.recentOrders(limit))
	}
}
