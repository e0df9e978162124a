package handler

import (
	"net/http"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Clientes
// ============================================================

func listClientsHandler(b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize := parsePagination(r)
		all := b.searchClients(r.URL.Query().Get("search"))
		items, totalPages := paginate(all, page, pageSize)

		writeEnvelope(w, http.StatusOK, domain.Page[domain.Client]{
			Data:       items,
			Total:      len(all),
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		})
	}
}

func searchClientsHandler(b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.searchClients(r.URL.Query().Get("q")))
	}
}

func clientDetailHandler(b *Backend, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := b.client(chi.URLParam(r, "id"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeEnvelope(w, http.StatusOK, c)
	}
}

// searchCustomersHandler answers with a bare array.
func searchCustomersHandler(b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.searchCustomers(r.URL.Query().Get("search")))
	}
}

// ============================================================
// Almoxarifado
// ============================================================

func stockHandler(b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		writeEnvelope(w, http.StatusOK, b.stock(q.Get("search"), q.Get("category")))
	}
}

func stockOrdersHandler(b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		writeJSON(w, http.StatusOK, b.listStockOrders(q.Get("status"), q.Get("tecnicoId")))
	}
}

func createStockOrderHandler(b *Backend, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := currentUser(b, r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var req domain.StockOrderRequest
		if err := decodeBody(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		order, err := b.createStockOrder(req, user)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeEnvelope(w, http.StatusCreated, order)
	}
}

func updateStockHandler(b *Backend, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.StockUpdateRequest
		if err := decodeBody(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		m, err := b.updateStock(req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeEnvelope(w, http.StatusOK, m)
	}
}

// ============================================================
// Usuários & empresa
// ============================================================

func profileHandler(b *Backend, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := currentUser(b, r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func updateProfileHandler(b *Backend, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.ProfileUpdate
		if err := decodeBody(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		user, err := b.updateProfile(UserIDFromContext(r.Context()), req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeEnvelope(w, http.StatusOK, user)
	}
}

func techniciansHandler(b *Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, b.technicians())
	}
}

func branchHandler(b *Backend, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		br, err := b.branch(chi.URLParam(r, "organizationId"), chi.URLParam(r, "branchId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, br)
	}
}
