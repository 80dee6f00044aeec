package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	b := ExponentialBackoff{Base: 10 * time.Millisecond, Max: 50 * time.Millisecond}
	cases := map[int]time.Duration{0: 10 * time.Millisecond, 1: 10 * time.Millisecond, 2: 20 * time.Millisecond, 3: 40 * time.Millisecond, 4: 50 * time.Millisecond}
	for attempt, want := range cases {
		if got := b.Next(attempt); got != want {
			t.Fatalf("attempt %d: expected %s, got %s", attempt, want, got)
		}
	}
}

func TestPolicyRetriesUntilSuccess(t *testing.T) {
	calls := 0
	p := Policy{MaxAttempts: 3, Backoff: ExponentialBackoff{Base: time.Millisecond}}
	err := p.Do(context.Background(), func(_ context.Context, attempt int) error {
		calls++
		if attempt < 3 {
			return errors.New("temporary")
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Fatalf("expected success on third attempt, got %v after %d calls", err, calls)
	}
}

func TestPolicyStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0
	p := Policy{
		MaxAttempts: 5,
		Backoff:     ExponentialBackoff{Base: time.Millisecond},
		Retryable:   func(err error) bool { return !errors.Is(err, permanent) },
	}
	err := p.Do(context.Background(), func(context.Context, int) error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) || calls != 1 {
		t.Fatalf("expected single attempt, got %d (%v)", calls, err)
	}
}

func TestPolicyHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := Policy{MaxAttempts: 5, Backoff: ExponentialBackoff{Base: time.Hour}}
	err := p.Do(ctx, func(context.Context, int) error {
		calls++
		cancel()
		return errors.New("down")
	})
	if err == nil || calls != 1 {
		t.Fatalf("expected to stop after cancellation, got %d calls (%v)", calls, err)
	}
}
