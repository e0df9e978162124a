// Package tokenstore persists the session (access token, refresh token and
// cached user) under a fixed namespace, on top of a pluggable key-value
// backend.
package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"

	"go.uber.org/zap"
)

// Backend is the raw key-value storage under the store.
type Backend interface {
	// Get returns ok=false with a nil error when key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Remove succeeds when key is already absent.
	Remove(ctx context.Context, key string) error
}

// Store implements port.TokenStore.
type Store struct {
	backend   Backend
	namespace string
	logger    *zap.Logger
}

// New creates a store that prefixes every key with namespace.
func New(backend Backend, namespace string, logger *zap.Logger) *Store {
	return &Store{backend: backend, namespace: namespace, logger: logger}
}

// Key returns the backend key for k, e.g. "@DigTecnico:token".
func (s *Store) Key(k domain.StorageKey) string {
	return fmt.Sprintf("%s:%s", s.namespace, k)
}

func (s *Store) Save(ctx context.Context, key domain.StorageKey, value string) error {
	if err := s.backend.Set(ctx, s.Key(key), value); err != nil {
		s.logger.Error("tokenstore: save failed",
			zap.String("key", s.Key(key)),
			zap.Error(err),
		)
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Load never fails: a broken backend reads as "no session".
func (s *Store) Load(ctx context.Context, key domain.StorageKey) (string, bool) {
	v, ok, err := s.backend.Get(ctx, s.Key(key))
	if err != nil {
		s.logger.Warn("tokenstore: load failed, treating as absent",
			zap.String("key", s.Key(key)),
			zap.Error(err),
		)
		return "", false
	}
	return v, ok
}

// Clear removes every session key. A failure on one key does not stop the
// others; the joined error is returned after all removals were attempted.
func (s *Store) Clear(ctx context.Context) error {
	var errs []error
	for _, k := range domain.SessionKeys {
		if err := s.backend.Remove(ctx, s.Key(k)); err != nil {
			s.logger.Warn("tokenstore: remove failed",
				zap.String("key", s.Key(k)),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("remove %s: %w", k, err))
		}
	}
	return errors.Join(errs...)
}
