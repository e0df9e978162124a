package tokenstore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"
	"github.com/boddenberg/digtecnico-client-go/internal/infra/tokenstore"

	"go.uber.org/zap"
)

// flakyBackend fails Get always and Remove for one key.
type flakyBackend struct {
	*tokenstore.MemoryBackend
	failRemove string
	failGet    bool
}

func (f *flakyBackend) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failGet {
		return "", false, errors.New("disk on fire")
	}
	return f.MemoryBackend.Get(ctx, key)
}

func (f *flakyBackend) Remove(ctx context.Context, key string) error {
	if key == f.failRemove {
		return errors.New("remove failed")
	}
	return f.MemoryBackend.Remove(ctx, key)
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := tokenstore.New(tokenstore.NewMemoryBackend(), "@DigTecnico", zap.NewNop())

	if err := s.Save(ctx, domain.KeyAccessToken, "T1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// idempotent upsert
	if err := s.Save(ctx, domain.KeyAccessToken, "T1"); err != nil {
		t.Fatalf("expected no error on repeat save, got %v", err)
	}

	v, ok := s.Load(ctx, domain.KeyAccessToken)
	if !ok || v != "T1" {
		t.Errorf("expected T1, got %q (ok=%v)", v, ok)
	}
	if _, ok := s.Load(ctx, domain.KeyRefreshToken); ok {
		t.Error("expected refresh token to be absent")
	}
}

func TestStore_NamespacedKeys(t *testing.T) {
	backend := tokenstore.NewMemoryBackend()
	s := tokenstore.New(backend, "@DigTecnico", zap.NewNop())

	if got := s.Key(domain.KeyUser); got != "@DigTecnico:user" {
		t.Errorf("unexpected key %q", got)
	}

	_ = s.Save(context.Background(), domain.KeyRefreshToken, "R1")
	if _, ok, _ := backend.Get(context.Background(), "@DigTecnico:refreshToken"); !ok {
		t.Error("expected value under namespaced key")
	}
}

func TestStore_LoadFailureReadsAsAbsent(t *testing.T) {
	s := tokenstore.New(&flakyBackend{MemoryBackend: tokenstore.NewMemoryBackend(), failGet: true}, "ns", zap.NewNop())

	v, ok := s.Load(context.Background(), domain.KeyAccessToken)
	if ok || v != "" {
		t.Errorf("expected absent on backend failure, got %q", v)
	}
}

func TestStore_ClearIsBestEffort(t *testing.T) {
	ctx := context.Background()
	mem := tokenstore.NewMemoryBackend()
	s := tokenstore.New(&flakyBackend{MemoryBackend: mem, failRemove: "ns:token"}, "ns", zap.NewNop())

	for _, k := range domain.SessionKeys {
		_ = s.Save(ctx, k, "v")
	}

	err := s.Clear(ctx)
	if err == nil {
		t.Fatal("expected error from failing key")
	}
	if _, ok := s.Load(ctx, domain.KeyRefreshToken); ok {
		t.Error("refresh token should be cleared despite earlier failure")
	}
	if _, ok := s.Load(ctx, domain.KeyUser); ok {
		t.Error("user should be cleared despite earlier failure")
	}
	if mem.Len() != 1 {
		t.Errorf("expected only the failing key to remain, got %d entries", mem.Len())
	}
}

func TestFileBackend_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s := tokenstore.New(tokenstore.NewFileBackend(path), "@DigTecnico", zap.NewNop())
	if err := s.Save(ctx, domain.KeyAccessToken, "T1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// a fresh store over the same file sees the value
	reopened := tokenstore.New(tokenstore.NewFileBackend(path), "@DigTecnico", zap.NewNop())
	if v, ok := reopened.Load(ctx, domain.KeyAccessToken); !ok || v != "T1" {
		t.Errorf("expected T1 after reopen, got %q", v)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}

	if err := reopened.Clear(ctx); err != nil {
		t.Fatalf("expected clean clear, got %v", err)
	}
	if _, ok := s.Load(ctx, domain.KeyAccessToken); ok {
		t.Error("expected token gone after clear")
	}
}

func TestFileBackend_CorruptFileReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{bad"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := tokenstore.New(tokenstore.NewFileBackend(path), "ns", zap.NewNop())
	if _, ok := s.Load(context.Background(), domain.KeyAccessToken); ok {
		t.Error("expected corrupt file to read as absent")
	}
}

func TestRedisBackend(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()

	rb, err := tokenstore.NewRedisBackend(url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer rb.Close()
	if err := rb.Ping(ctx); err != nil {
		t.Skipf("redis unreachable: %v", err)
	}

	s := tokenstore.New(rb, "@DigTecnicoTest", zap.NewNop())
	_ = s.Save(ctx, domain.KeyAccessToken, "T1")
	if v, ok := s.Load(ctx, domain.KeyAccessToken); !ok || v != "T1" {
		t.Errorf("expected T1, got %q", v)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := s.Load(ctx, domain.KeyAccessToken); ok {
		t.Error("expected token gone after clear")
	}
}
