package llm

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gstmind/gstmind/internal/common"
)

// rateLimiter implements a simple token bucket rate limiter with
// on-demand refill.
type rateLimiter struct {
	lastRefill time.Time
	tokens     float64
	capacity   float64
	perSecond  float64
	mu         sync.Mutex
}

// newRateLimiter creates a rate limiter for the given requests per minute.
func newRateLimiter(requestsPerMinute int) *rateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	return &rateLimiter{
		tokens:     float64(requestsPerMinute),
		capacity:   float64(requestsPerMinute),
		perSecond:  float64(requestsPerMinute) / 60.0,
		lastRefill: time.Now(),
	}
}

// wait blocks until a token is available or the context is canceled.
func (rl *rateLimiter) wait(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if rl.tryAcquire() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (rl *rateLimiter) tryAcquire() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.tokens += now.Sub(rl.lastRefill).Seconds() * rl.perSecond
	if rl.tokens > rl.capacity {
		rl.tokens = rl.capacity
	}
	rl.lastRefill = now

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

// rateLimitedClient wraps a Client with request pacing and retry on
// rate-limit responses.
type rateLimitedClient struct {
	inner   Client
	limiter *rateLimiter
}

// NewRateLimitedClient wraps a client so calls are paced to the given
// requests-per-minute budget and rate-limit errors are retried with
// backoff.
func NewRateLimitedClient(inner Client, requestsPerMinute int) Client {
	return &rateLimitedClient{
		inner:   inner,
		limiter: newRateLimiter(requestsPerMinute),
	}
}

// Name identifies the wrapped backend.
func (c *rateLimitedClient) Name() string {
	return c.inner.Name()
}

// Generate paces and retries the wrapped Generate call.
func (c *rateLimitedClient) Generate(ctx context.Context, prompt string) (string, error) {
	var result string

	err := common.WithRetry(ctx, func() error {
		if err := c.limiter.wait(ctx); err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}

		text, err := c.inner.Generate(ctx, prompt)
		if err != nil {
			if errors.Is(err, common.ErrRateLimit) {
				return err
			}
			return &common.RetryableError{Err: err, Retryable: false}
		}
		result = text
		return nil
	}, common.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Second,
	})

	return result, err
}
