package contract

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// MaxRetries is how many times a failed network operation is retried.
const MaxRetries = 1

// Retry runs op and retries it MaxRetries times after a fixed wait when it fails.
// Errors wrapped with backoff.Permanent are returned immediately and unwrapped.
func Retry(ctx context.Context, wait time.Duration, op func() error) error {
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(wait), MaxRetries), ctx)
	return backoff.Retry(op, b)
}
