package llm

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RetryPolicy bounds the retry behavior for rate-limited completions.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryPolicy retries rate limits up to 3 attempts with 1s, 2s,
// 4s backoff.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second}

// RetryClient wraps an LLMClient with bounded retries for rate-limit
// failures and an optional caller-owned rate limiter gating every
// attempt. Auth failures abort immediately; other transport errors
// propagate unwrapped. Exhausting retries on a rate limit surfaces
// KindMaxRetries with the attempt count.
type RetryClient struct {
	inner   LLMClient
	policy  RetryPolicy
	limiter *rate.Limiter
}

func NewRetryClient(inner LLMClient, policy RetryPolicy, limiter *rate.Limiter) *RetryClient {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = DefaultRetryPolicy.MaxAttempts
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = DefaultRetryPolicy.BaseDelay
	}
	return &RetryClient{inner: inner, policy: policy, limiter: limiter}
}

func (r *RetryClient) Generate(ctx context.Context, prompt string) (string, error) {
	var last error
	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return "", err
			}
		}

		resp, err := r.inner.Generate(ctx, prompt)
		if err == nil {
			return resp, nil
		}

		switch ErrorKind(err) {
		case KindAuth:
			return "", err
		case KindRateLimit:
			last = err
		default:
			return "", err
		}

		if attempt == r.policy.MaxAttempts {
			break
		}

		delay := r.policy.BaseDelay << (attempt - 1)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
	return "", &Error{Kind: KindMaxRetries, Attempts: r.policy.MaxAttempts, Err: last}
}
