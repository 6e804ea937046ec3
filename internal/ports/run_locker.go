package ports

import "context"

// RunLocker serializes named units of work across all instances of the
// service. Acquire blocks until the lease is held or ctx is done; the
// returned release function must be called exactly once.
type RunLocker interface {
	Acquire(ctx context.Context, name string) (release func(), err error)
}
