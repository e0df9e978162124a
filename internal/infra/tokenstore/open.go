package tokenstore

import (
	"fmt"

	"github.com/boddenberg/digtecnico-client-go/internal/config"

	"go.uber.org/zap"
)

// Open builds the store selected by cfg.TokenStore.
func Open(cfg *config.Config, logger *zap.Logger) (*Store, error) {
	var backend Backend
	switch cfg.TokenStore {
	case "memory":
		backend = NewMemoryBackend()
	case "file":
		backend = NewFileBackend(cfg.TokenStorePath)
	case "redis":
		rb, err := NewRedisBackend(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		backend = rb
	default:
		return nil, fmt.Errorf("unknown token store %q", cfg.TokenStore)
	}

	logger.Debug("token store ready",
		zap.String("backend", cfg.TokenStore),
		zap.String("namespace", cfg.StorageNamespace),
	)
	return New(backend, cfg.StorageNamespace, logger), nil
}
