package bond

import (
	"context"
	"net/http"
	"time"
)

// withRetry runs fn up to 1+retries times, sleeping delay between
// attempts. fn reports via shouldRetry whether its failure is worth
// retrying; context cancellation always stops the loop.
func withRetry(ctx context.Context, retries int, delay time.Duration, fn func() (shouldRetry bool, err error)) error {
	var lastErr error

	for attempt := 0; attempt <= retries; attempt++ {
		retryable, err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable || attempt == retries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

// retryableStatus reports whether an HTTP status is worth retrying.
// Client errors are not: the request will fail the same way again.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
