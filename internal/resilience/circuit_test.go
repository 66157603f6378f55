package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testBreaker(threshold int, reset time.Duration) (*CircuitBreaker, *time.Time) {
	now := time.Now()
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: threshold,
		ResetTimeout:     reset,
	})
	cb.nowFunc = func() time.Time { return now }
	return cb, &now
}

func failing(_ context.Context) (int, error) {
	return 0, errors.New("boom")
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb, _ := testBreaker(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = ExecuteVal(ctx, cb, failing)
	}

	if cb.State() != CircuitOpen {
		t.Fatalf("expected open, got %s", cb.State())
	}

	_, err := ExecuteVal(ctx, cb, func(_ context.Context) (int, error) {
		t.Fatal("fn must not run while circuit is open")
		return 0, nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb, _ := testBreaker(3, time.Minute)
	ctx := context.Background()

	_, _ = ExecuteVal(ctx, cb, failing)
	_, _ = ExecuteVal(ctx, cb, failing)
	_, _ = ExecuteVal(ctx, cb, func(_ context.Context) (int, error) { return 1, nil })
	_, _ = ExecuteVal(ctx, cb, failing)
	_, _ = ExecuteVal(ctx, cb, failing)

	if cb.State() != CircuitClosed {
		t.Fatalf("expected closed, got %s", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenProbeRecovers(t *testing.T) {
	cb, now := testBreaker(1, time.Second)
	ctx := context.Background()

	_, _ = ExecuteVal(ctx, cb, failing)
	if cb.State() != CircuitOpen {
		t.Fatalf("expected open, got %s", cb.State())
	}

	*now = now.Add(2 * time.Second)

	val, err := ExecuteVal(ctx, cb, func(_ context.Context) (int, error) { return 7, nil })
	if err != nil {
		t.Fatalf("probe should pass through: %v", err)
	}
	if val != 7 {
		t.Errorf("expected 7, got %d", val)
	}
	if cb.State() != CircuitClosed {
		t.Fatalf("expected closed after successful probe, got %s", cb.State())
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	cb, now := testBreaker(1, time.Second)
	ctx := context.Background()

	_, _ = ExecuteVal(ctx, cb, failing)
	*now = now.Add(2 * time.Second)
	_, _ = ExecuteVal(ctx, cb, failing)

	// The clock has not advanced past the new failure, so the circuit
	// must reject immediately.
	_, err := ExecuteVal(ctx, cb, func(_ context.Context) (int, error) { return 0, nil })
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitBreaker_ShouldTripFilter(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		ShouldTrip:       IsTransient,
	})
	ctx := context.Background()

	// A non-transient error must not trip the breaker.
	_, _ = ExecuteVal(ctx, cb, failing)
	if cb.State() != CircuitClosed {
		t.Fatalf("expected closed, got %s", cb.State())
	}

	_, _ = ExecuteVal(ctx, cb, func(_ context.Context) (int, error) {
		return 0, NewTransientError(errors.New("boom"), 503)
	})
	if cb.State() != CircuitOpen {
		t.Fatalf("expected open, got %s", cb.State())
	}
}
