package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/boddenberg/digtecnico-client-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var errTransport = errors.New("connection refused")

func TestRetryWithBackoff_Success(t *testing.T) {
	cfg := resilience.Config{
		MaxRetries:     3,
		InitialBackoff: 10 * time.Millisecond,
	}

	callCount := 0
	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		callCount++
		return nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
}

func TestRetryWithBackoff_RetriesOnFailure(t *testing.T) {
	cfg := resilience.Config{
		MaxRetries:     3,
		InitialBackoff: 10 * time.Millisecond,
	}

	callCount := 0
	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		callCount++
		if callCount < 3 {
			return errors.New("temporary error")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestRetryWithBackoff_StopsOnNonRetryable(t *testing.T) {
	cfg := resilience.Config{
		MaxRetries:     5,
		InitialBackoff: 10 * time.Millisecond,
		ShouldRetry:    func(err error) bool { return errors.Is(err, errTransport) },
	}

	callCount := 0
	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		callCount++
		return errors.New("invalid credentials")
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if callCount != 1 {
		t.Errorf("expected a single call, got %d", callCount)
	}
}

func TestRetryWithBackoff_RespectsContext(t *testing.T) {
	cfg := resilience.Config{
		MaxRetries:     5,
		InitialBackoff: 1 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := resilience.RetryWithBackoff(ctx, cfg, func() error {
		return errors.New("error")
	})

	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestCircuitBreaker_TripsOnTransportFailures(t *testing.T) {
	cb := resilience.NewCircuitBreaker("test", func(err error) bool {
		return errors.Is(err, errTransport)
	}, zap.NewNop())

	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(func() (any, error) { return nil, errTransport })
	}

	if cb.State() != gobreaker.StateOpen {
		t.Fatalf("expected open breaker, got %s", cb.State())
	}
	_, err := cb.Execute(func() (any, error) { return nil, nil })
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
}

func TestCircuitBreaker_IgnoresNonTransportErrors(t *testing.T) {
	cb := resilience.NewCircuitBreaker("test", func(err error) bool {
		return errors.Is(err, errTransport)
	}, zap.NewNop())

	for i := 0; i < 10; i++ {
		_, _ = cb.Execute(func() (any, error) { return nil, errors.New("404 not found") })
	}

	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected closed breaker, got %s", cb.State())
	}
}
