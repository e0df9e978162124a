package domain

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform success contract of every API call.
// Data stays raw until a service decodes it into its own type.
type Envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// Page is the paginated list shape used by orders and clients.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// DecodeData unmarshals env.Data into T. A null or missing payload yields
// the zero value.
func DecodeData[T any](env *Envelope) (T, error) {
	var out T
	if env == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, NewInvalidResponseError(http.StatusOK)
	}
	return out, nil
}
