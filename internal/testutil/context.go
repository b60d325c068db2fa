package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds store queries and quiz runs in tests.
const DefaultTimeout = 5 * time.Second

// deadlineSlack is kept free before the `go test -timeout` deadline.
const deadlineSlack = time.Second

// deadliner is implemented by *testing.T; testing.TB does not declare it.
type deadliner interface {
	Deadline() (time.Time, bool)
}

// Context returns a context canceled at test cleanup or after timeout,
// whichever comes first. A non-positive timeout means DefaultTimeout.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), budget(t, timeout))
	t.Cleanup(cancel)
	return ctx
}

// budget shrinks timeout to fit inside the test binary deadline, if any.
func budget(t testing.TB, timeout time.Duration) time.Duration {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	d, ok := t.(deadliner)
	if !ok {
		return timeout
	}
	deadline, ok := d.Deadline()
	if !ok {
		return timeout
	}
	if left := time.Until(deadline) - deadlineSlack; left > 0 && left < timeout {
		return left
	}
	return timeout
}
