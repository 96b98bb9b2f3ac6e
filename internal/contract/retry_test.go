package contract

import (
	"context"
	"errors"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
)

func TestRetry(t *testing.T) {
	errNetwork := errors.New("connection reset")

	t.Run("succeeds after one retry", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), 0, func() error {
			calls++
			if calls == 1 {
				return errNetwork
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("gives up after one retry", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), 0, func() error {
			calls++
			return errNetwork
		})
		assert.ErrorIs(t, err, errNetwork)
		assert.Equal(t, 1+MaxRetries, calls)
	})

	t.Run("permanent errors are not retried", func(t *testing.T) {
		calls := 0
		errStatus := errors.New("status 403")
		err := Retry(context.Background(), 0, func() error {
			calls++
			return backoff.Permanent(errStatus)
		})
		assert.ErrorIs(t, err, errStatus)
		assert.Equal(t, 1, calls)
	})
}
