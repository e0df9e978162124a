// Package port defines the interfaces (ports) between the service layer and
// its infrastructure. Services depend on these so tests can swap in fakes.
package port

import (
	"context"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"
)

// TokenStore persists the session entries.
type TokenStore interface {
	// Save upserts value under key.
	Save(ctx context.Context, key domain.StorageKey, value string) error
	// Load returns the value, or false when absent or unreadable.
	Load(ctx context.Context, key domain.StorageKey) (string, bool)
	// Clear removes every session key, best effort.
	Clear(ctx context.Context) error
}

// CallOptions tune a single API call.
type CallOptions struct {
	// UseRootURL targets the root API instead of the mobile-prefixed base.
	UseRootURL bool
}

// CallOption mutates CallOptions.
type CallOption func(*CallOptions)

// WithRootURL sends the request to the root API base.
func WithRootURL() CallOption {
	return func(o *CallOptions) { o.UseRootURL = true }
}

// ApplyCallOptions folds opts into a CallOptions value.
func ApplyCallOptions(opts []CallOption) CallOptions {
	var o CallOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// APIClient is the single network egress point. Every method returns an
// Envelope on success or a *domain.APIError.
type APIClient interface {
	Get(ctx context.Context, endpoint string, opts ...CallOption) (*domain.Envelope, error)
	Post(ctx context.Context, endpoint string, body any, opts ...CallOption) (*domain.Envelope, error)
	Put(ctx context.Context, endpoint string, body any, opts ...CallOption) (*domain.Envelope, error)
	Patch(ctx context.Context, endpoint string, body any, opts ...CallOption) (*domain.Envelope, error)
	Delete(ctx context.Context, endpoint string, opts ...CallOption) (*domain.Envelope, error)

	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}
