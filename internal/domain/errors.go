package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds carried in APIError.Kind.
const (
	KindNetwork         = "network_error"
	KindTimeout         = "timeout"
	KindLoginFailed     = "login_failed"
	KindCanceled        = "canceled"
	KindCircuitOpen     = "circuit_open"
	KindInvalidResponse = "invalid_response"
)

// Fallback texts when the backend error body carries nothing useful.
const (
	defaultErrorKind    = "Erro desconhecido"
	defaultErrorMessage = "Ocorreu um erro na requisição"
)

// APIError is the single failure shape surfaced by the API layer.
// StatusCode is 0 for connectivity failures, 408 for timeouts and the
// HTTP status for server-reported errors.
type APIError struct {
	Success    bool   `json:"success"`
	Kind       string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error [%s] status=%d: %s", e.Kind, e.StatusCode, e.Message)
}

// NewHTTPError builds the error for a non-2xx response. Empty kind or
// message fall back to generic text.
func NewHTTPError(status int, kind, message string) *APIError {
	if kind == "" {
		kind = defaultErrorKind
	}
	if message == "" {
		message = defaultErrorMessage
	}
	return &APIError{Kind: kind, Message: message, StatusCode: status}
}

func NewNetworkError() *APIError {
	return &APIError{Kind: KindNetwork, Message: "Erro de conexão com o servidor", StatusCode: 0}
}

func NewTimeoutError() *APIError {
	return &APIError{Kind: KindTimeout, Message: "A requisição demorou muito para responder", StatusCode: http.StatusRequestTimeout}
}

func NewCanceledError() *APIError {
	return &APIError{Kind: KindCanceled, Message: "A requisição foi cancelada", StatusCode: 0}
}

func NewCircuitOpenError() *APIError {
	return &APIError{Kind: KindCircuitOpen, Message: "Servidor indisponível no momento, tente novamente em instantes", StatusCode: 0}
}

func NewInvalidResponseError(status int) *APIError {
	return &APIError{Kind: KindInvalidResponse, Message: "Resposta inválida do servidor", StatusCode: status}
}

// NewLoginFailedError reports a login payload the app cannot turn into a session.
func NewLoginFailedError(message string) *APIError {
	return &APIError{Kind: KindLoginFailed, Message: message, StatusCode: http.StatusInternalServerError}
}

// AsAPIError unwraps err into an APIError when it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is an HTTP 401 from the backend.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}

// IsConnectivity reports whether err never reached the backend.
func IsConnectivity(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == 0
}

// UserMessage maps an error to the text shown to the technician.
func UserMessage(err error) string {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return "Ocorreu um erro inesperado"
	}
	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		return "Usuário ou senha inválidos"
	case 0:
		return "Verifique sua conexão com a internet"
	default:
		return apiErr.Message
	}
}
