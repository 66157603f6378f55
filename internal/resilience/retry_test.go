package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 1 * time.Millisecond,
		MaxBackoff:     10 * time.Millisecond,
		Multiplier:     2.0,
	}
}

func TestDoVal_SuccessOnFirstAttempt(t *testing.T) {
	var calls int
	val, err := DoVal(context.Background(), DefaultRetryConfig(), func(_ context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != "ok" {
		t.Errorf("expected ok, got %q", val)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDoVal_SuccessAfterRetry(t *testing.T) {
	var calls int
	val, err := DoVal(context.Background(), fastRetryConfig(), func(_ context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, NewTransientError(errors.New("temporary"), 503)
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != 42 {
		t.Errorf("expected 42, got %d", val)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDoVal_ExhaustsRetries(t *testing.T) {
	var calls int
	_, err := DoVal(context.Background(), fastRetryConfig(), func(_ context.Context) (int, error) {
		calls++
		return 0, NewTransientError(errors.New("always fails"), 500)
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDoVal_DefaultBudgetIsInitialPlusThreeRetries(t *testing.T) {
	cfg := DefaultRetryConfig()
	cfg.InitialBackoff = 1 * time.Millisecond
	cfg.MaxBackoff = 10 * time.Millisecond

	var calls int
	_, err := DoVal(context.Background(), cfg, func(_ context.Context) (int, error) {
		calls++
		return 0, NewTransientError(errors.New("always fails"), 503)
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 4 {
		t.Errorf("expected 4 calls (1 initial + 3 retries), got %d", calls)
	}
}

func TestDoVal_NonTransientError_NoRetry(t *testing.T) {
	var calls int
	_, err := DoVal(context.Background(), fastRetryConfig(), func(_ context.Context) (int, error) {
		calls++
		return 0, errors.New("permanent error: bad request")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDoVal_ContextCanceled_StopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls int
	_, err := DoVal(ctx, fastRetryConfig(), func(_ context.Context) (int, error) {
		calls++
		cancel()
		return 0, NewTransientError(errors.New("temporary"), 503)
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_WrapsDoVal(t *testing.T) {
	var calls int
	err := Do(context.Background(), fastRetryConfig(), func(_ context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDoVal_OnRetryCallback(t *testing.T) {
	var retries []int
	cfg := fastRetryConfig()
	cfg.OnRetry = func(attempt int, _ error) {
		retries = append(retries, attempt)
	}

	_, _ = DoVal(context.Background(), cfg, func(_ context.Context) (int, error) {
		return 0, NewTransientError(errors.New("temporary"), 429)
	})

	if len(retries) != 2 {
		t.Fatalf("expected 2 retry callbacks, got %d", len(retries))
	}
	if retries[0] != 1 || retries[1] != 2 {
		t.Errorf("unexpected attempt numbers: %v", retries)
	}
}
