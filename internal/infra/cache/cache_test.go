package cache_test

import (
	"strings"
	"testing"
	"time"

	"github.com/boddenberg/digtecnico-client-go/internal/infra/cache"
)

func TestCache_SetAndGet(t *testing.T) {
	c := cache.New[string](5 * time.Minute)
	defer c.Close()

	c.Set("rt-1", "user-1")
	val, ok := c.Get("rt-1")
	if !ok {
		t.Fatal("expected key to exist")
	}
	if val != "user-1" {
		t.Errorf("expected 'user-1', got '%s'", val)
	}
}

func TestCache_Expiration(t *testing.T) {
	c := cache.New[string](50 * time.Millisecond)
	defer c.Close()

	c.Set("rt-1", "user-1")
	time.Sleep(100 * time.Millisecond)

	if _, ok := c.Get("rt-1"); ok {
		t.Fatal("expected entry to be expired")
	}
	if n := c.Len(); n != 0 {
		t.Errorf("expected 0 live entries, got %d", n)
	}
}

func TestCache_TakeConsumesOnce(t *testing.T) {
	c := cache.New[string](5 * time.Minute)
	defer c.Close()

	c.Set("rt-1", "user-1")

	if v, ok := c.Take("rt-1"); !ok || v != "user-1" {
		t.Fatalf("expected first take to succeed, got %q %v", v, ok)
	}
	if _, ok := c.Take("rt-1"); ok {
		t.Fatal("expected second take to miss")
	}
}

func TestCache_DeleteWhere(t *testing.T) {
	c := cache.New[string](5 * time.Minute)
	defer c.Close()

	c.Set("rt-1", "user-1")
	c.Set("rt-2", "user-1")
	c.Set("rt-3", "user-2")

	n := c.DeleteWhere(func(_ string, v string) bool { return v == "user-1" })
	if n != 2 {
		t.Errorf("expected 2 removed, got %d", n)
	}
	if _, ok := c.Get("rt-3"); !ok {
		t.Error("expected unrelated entry to survive")
	}
}

func TestCache_Delete(t *testing.T) {
	c := cache.New[string](5 * time.Minute)
	defer c.Close()

	c.Set("rt-1", "user-1")
	c.Delete("rt-1")

	if _, ok := c.Get("rt-1"); ok {
		t.Fatal("expected key to be deleted")
	}
}

func TestCache_CloseIsIdempotent(t *testing.T) {
	c := cache.New[string](time.Minute)
	c.Close()
	c.Close()

	c.Set("k", strings.Repeat("x", 3))
	if v, ok := c.Get("k"); !ok || v != "xxx" {
		t.Error("expected cache usable after Close")
	}
}
