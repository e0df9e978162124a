package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"

	"go.uber.org/zap"
)

// Normalizer turns a raw HTTP outcome into an Envelope or an APIError.
// It does not know any login payload shape.
type Normalizer struct {
	// onUnauthorized runs before a 401 error is returned.
	onUnauthorized func(ctx context.Context)
	logger         *zap.Logger
}

// NewNormalizer creates a normalizer. onUnauthorized may be nil.
func NewNormalizer(onUnauthorized func(ctx context.Context), logger *zap.Logger) *Normalizer {
	return &Normalizer{onUnauthorized: onUnauthorized, logger: logger}
}

// Normalize maps (status, body) to the envelope contract.
//
// Non-2xx responses become an APIError carrying the status. 2xx bodies that
// already hold a boolean "success" and a "data" key pass through unchanged;
// anything else is wrapped as {success: true, data: body}.
func (n *Normalizer) Normalize(ctx context.Context, status int, body []byte) (*domain.Envelope, error) {
	if status < 200 || status > 299 {
		kind, message := errorFields(body)
		apiErr := domain.NewHTTPError(status, kind, message)

		if status == http.StatusUnauthorized && n.onUnauthorized != nil {
			n.onUnauthorized(ctx)
		}
		return nil, apiErr
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return &domain.Envelope{Success: true, Data: json.RawMessage("null")}, nil
	}
	if !json.Valid(body) {
		n.logger.Warn("normalizer: 2xx response is not JSON", zap.Int("status", status))
		return nil, domain.NewInvalidResponseError(status)
	}

	if isEnvelope(body) {
		var env domain.Envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, domain.NewInvalidResponseError(status)
		}
		return &env, nil
	}

	data := make(json.RawMessage, len(body))
	copy(data, body)
	return &domain.Envelope{Success: true, Data: data}, nil
}

// isEnvelope reports whether body is an object with a boolean "success"
// and a "data" key.
func isEnvelope(body []byte) bool {
	if body[0] != '{' {
		return false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return false
	}
	success, ok := fields["success"]
	if !ok {
		return false
	}
	if _, ok := fields["data"]; !ok {
		return false
	}
	s := string(bytes.TrimSpace(success))
	return s == "true" || s == "false"
}

// errorFields pulls string "error" and "message" out of an error body.
// Non-JSON bodies and non-string fields yield empty values.
func errorFields(body []byte) (kind, message string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", ""
	}
	return stringField(fields["error"]), stringField(fields["message"])
}

func stringField(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}
