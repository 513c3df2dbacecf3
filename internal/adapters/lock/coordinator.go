// Package lock serializes builds of the same cache entry within a process and
// across processes sharing a cache directory.
package lock

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/jitc/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// pollInterval is how often a contended file lock is retried.
const pollInterval = 25 * time.Millisecond

var (
	_ ports.Coordinator = (*Coordinator)(nil)
	_ ports.Coordinator = Local{}
)

// Coordinator implements ports.Coordinator with an in-process singleflight
// group in front of an advisory file lock.
//
// Concurrent callers with the same key share the artifact of one run. Other
// processes wait on the lock file until the holder is done.
type Coordinator struct {
	group singleflight.Group

	mu      sync.Mutex
	flights map[string]*flight
}

// flight is the context shared by the callers waiting on one key. It is
// cancelled once the last of them has returned.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// NewCoordinator creates a Coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{flights: make(map[string]*flight)}
}

// Do runs fn while holding the file lock at key.
//
// The shared run keeps the values of the first caller's ctx but not its
// cancellation. Each caller stops waiting when its own ctx is done, and the
// run is cancelled when no caller is left.
func (c *Coordinator) Do(
	ctx context.Context,
	key string,
	fn func(context.Context) (domain.Artifact, error),
) (domain.Artifact, error) {
	fl := c.join(ctx, key)
	defer c.leave(key, fl)

	ch := c.group.DoChan(key, func() (any, error) {
		return withFileLock(fl.ctx, key, fn)
	})

	select {
	case <-ctx.Done():
		return domain.Artifact{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.Artifact{}, res.Err
		}
		return res.Val.(domain.Artifact), nil
	}
}

func (c *Coordinator) join(ctx context.Context, key string) *flight {
	c.mu.Lock()
	defer c.mu.Unlock()

	fl, ok := c.flights[key]
	if !ok {
		fl = &flight{}
		fl.ctx, fl.cancel = context.WithCancel(context.WithoutCancel(ctx))
		c.flights[key] = fl
	}
	fl.waiters++
	return fl
}

func (c *Coordinator) leave(key string, fl *flight) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fl.waiters--
	if fl.waiters > 0 {
		return
	}
	fl.cancel()
	delete(c.flights, key)
	// A run still unwinding must not be joined by later callers.
	c.group.Forget(key)
}

func withFileLock(
	ctx context.Context,
	path string,
	fn func(context.Context) (domain.Artifact, error),
) (domain.Artifact, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return domain.Artifact{}, zerr.With(zerr.Wrap(err, domain.ErrLockFailed.Error()), "path", path)
	}

	//nolint:gosec // path is derived from the validated entry ID
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, domain.FilePerm)
	if err != nil {
		return domain.Artifact{}, zerr.With(zerr.Wrap(err, domain.ErrLockFailed.Error()), "path", path)
	}
	defer func() { _ = f.Close() }()

	if err := acquire(ctx, f); err != nil {
		return domain.Artifact{}, zerr.With(zerr.Wrap(err, domain.ErrLockFailed.Error()), "path", path)
	}
	defer func() { _ = release(f) }()

	if err := ctx.Err(); err != nil {
		return domain.Artifact{}, err
	}
	return fn(ctx)
}

// Local runs fn directly. It is used when no other process shares the cache.
type Local struct{}

// Do runs fn without locking.
func (Local) Do(
	ctx context.Context,
	_ string,
	fn func(context.Context) (domain.Artifact, error),
) (domain.Artifact, error) {
	return fn(ctx)
}
