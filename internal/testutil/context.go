package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds contexts handed to code under test.
const DefaultTimeout = 5 * time.Second

// deadliner is satisfied by *testing.T. testing.TB does not expose it.
type deadliner interface {
	Deadline() (time.Time, bool)
}

// Context returns a context cancelled when the test finishes. It expires
// after timeout, or DefaultTimeout when timeout is not positive, but never
// later than one second before the test binary's own deadline.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), budget(t, timeout))
	t.Cleanup(cancel)
	return ctx
}

func budget(t testing.TB, timeout time.Duration) time.Duration {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	d, ok := t.(deadliner)
	if !ok {
		return timeout
	}
	deadline, set := d.Deadline()
	if !set {
		return timeout
	}
	if remaining := time.Until(deadline) - time.Second; remaining > 0 && remaining < timeout {
		return remaining
	}
	return timeout
}
