package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestMemoryLimiterFixedWindow(t *testing.T) {
	limiter := NewMemoryLimiter()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := limiter.Allow(ctx, "contact:1.2.3.4", 3, time.Minute)
		if err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		if !result.Allowed {
			t.Fatalf("request %d should pass", i)
		}
	}

	result, err := limiter.Allow(ctx, "contact:1.2.3.4", 3, time.Minute)
	if err != nil {
		t.Fatalf("allow over limit: %v", err)
	}
	if result.Allowed {
		t.Fatal("fourth request in the window should be blocked")
	}
	if result.RetryAfter <= 0 {
		t.Fatalf("expected a retry-after hint, got %v", result.RetryAfter)
	}

	// A different key has its own window.
	other, err := limiter.Allow(ctx, "contact:5.6.7.8", 3, time.Minute)
	if err != nil || !other.Allowed {
		t.Fatalf("other key should pass, allowed=%v err=%v", other.Allowed, err)
	}
}

func TestMemoryLimiterWindowExpiry(t *testing.T) {
	limiter := NewMemoryLimiter()
	ctx := context.Background()

	if _, err := limiter.Allow(ctx, "k", 1, 10*time.Millisecond); err != nil {
		t.Fatalf("allow: %v", err)
	}
	blocked, err := limiter.Allow(ctx, "k", 1, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if blocked.Allowed {
		t.Fatal("second request should be blocked")
	}

	time.Sleep(20 * time.Millisecond)
	again, err := limiter.Allow(ctx, "k", 1, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("allow after expiry: %v", err)
	}
	if !again.Allowed {
		t.Fatal("window should have reset")
	}
}

func TestZeroLimitDisablesCheck(t *testing.T) {
	limiter := NewMemoryLimiter()

	result, err := limiter.Allow(context.Background(), "k", 0, time.Minute)
	if err != nil || !result.Allowed {
		t.Fatalf("zero limit must pass everything, allowed=%v err=%v", result.Allowed, err)
	}
}

func TestRedisLimiterFixedWindow(t *testing.T) {
	mini := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { rdb.Close() })

	limiter := NewRedisLimiter(rdb, "")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		result, err := limiter.Allow(ctx, "agent:9.9.9.9", 2, time.Minute)
		if err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		if !result.Allowed {
			t.Fatalf("request %d should pass", i)
		}
	}

	result, err := limiter.Allow(ctx, "agent:9.9.9.9", 2, time.Minute)
	if err != nil {
		t.Fatalf("allow over limit: %v", err)
	}
	if result.Allowed {
		t.Fatal("third request in the window should be blocked")
	}

	// After the window expires the counter starts over.
	mini.FastForward(time.Minute + time.Second)
	result, err = limiter.Allow(ctx, "agent:9.9.9.9", 2, time.Minute)
	if err != nil {
		t.Fatalf("allow after expiry: %v", err)
	}
	if !result.Allowed {
		t.Fatal("window should have reset")
	}
}
