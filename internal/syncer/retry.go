package syncer

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/platefeed/platefeed-sync/internal/errs"
)

// retryPolicy re-issues recoverable failures with exponential backoff,
// preserving the original request parameters. It is independent of any
// view lifecycle: once started, retries run to completion or exhaustion.
type retryPolicy struct {
	maxAttempts int
	base        time.Duration
}

// do runs op up to maxAttempts times. Irrecoverable errors (auth, client
// errors, validation) abort immediately. The last error is returned after
// exhaustion; no further automatic retries happen without explicit user
// action.
func (p retryPolicy) do(ctx context.Context, op func(ctx context.Context) error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.base
	exp.Multiplier = 2
	exp.RandomizationFactor = 0 // deterministic 1s, 2s, 4s ladder
	exp.MaxInterval = p.base * 8
	exp.Reset()

	var err error
	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		if attempt > 0 {
			retriesTotal.Inc()
			select {
			case <-time.After(exp.NextBackOff()):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err = op(ctx); err == nil {
			return nil
		}
		if !errs.IsRecoverable(err) {
			return err
		}
	}
	return err
}
