package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ============================================================
// Shared helper functions
// ============================================================

// errorResponse mirrors the backend error body the client reads.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// envelope is the {success, data} wrapper newer endpoints answer with.
type envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, errorResponse{Error: kind, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeEnvelope answers in the enveloped shape; writeJSON answers bare.
func writeEnvelope(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data, Timestamp: time.Now().UTC().Format(time.RFC3339)})
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return validationError("corpo da requisição inválido")
	}
	return nil
}

func parsePagination(r *http.Request) (page, pageSize int) {
	page = 1
	pageSize = 20
	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	if v := r.URL.Query().Get("pageSize"); v != "" {
		if ps, err := strconv.Atoi(v); err == nil && ps > 0 && ps <= 100 {
			pageSize = ps
		}
	}
	return
}

// paginate slices items for the requested page.
func paginate[T any](items []T, page, pageSize int) (out []T, totalPages int) {
	totalPages = (len(items) + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}, totalPages
	}
	end := min(start+pageSize, len(items))
	return items[start:end], totalPages
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ============================================================
// Errors
// ============================================================

var (
	errNotFound     = errors.New("not_found")
	errUnauthorized = errors.New("unauthorized")
	errValidation   = errors.New("validation_error")
)

type mockError struct {
	kind error
	msg  string
}

func (e *mockError) Error() string { return e.kind.Error() + ": " + e.msg }
func (e *mockError) Unwrap() error { return e.kind }

func notFoundError(msg string) error     { return &mockError{kind: errNotFound, msg: msg} }
func unauthorizedError(msg string) error { return &mockError{kind: errUnauthorized, msg: msg} }
func validationError(msg string) error   { return &mockError{kind: errValidation, msg: msg} }

// handleServiceError maps backend errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	msg := err.Error()
	var me *mockError
	if errors.As(err, &me) {
		msg = me.msg
	}

	switch {
	case errors.Is(err, errNotFound):
		logger.Debug("not found", zap.String("error", msg))
		writeError(w, http.StatusNotFound, errNotFound.Error(), msg)
	case errors.Is(err, errUnauthorized):
		logger.Warn("unauthorized", zap.String("error", msg))
		writeError(w, http.StatusUnauthorized, errUnauthorized.Error(), msg)
	case errors.Is(err, errValidation):
		logger.Debug("validation error", zap.String("error", msg))
		writeError(w, http.StatusBadRequest, errValidation.Error(), msg)
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "Erro interno do servidor")
	}
}
