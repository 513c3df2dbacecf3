//go:build unix

package lock_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jitc/internal/adapters/lock"
	"go.trai.ch/jitc/internal/core/domain"
	"golang.org/x/sys/unix"
)

func TestCoordinator_WaitsForOtherHolder(t *testing.T) {
	key := filepath.Join(t.TempDir(), "mod_abc.lock")

	// Another process holding the lock looks the same as another open file
	// description holding it.
	f, err := os.OpenFile(key, os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, unix.Flock(int(f.Fd()), unix.LOCK_EX))

	c := lock.NewCoordinator()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var called atomic.Bool
	_, err = c.Do(ctx, key, func(context.Context) (domain.Artifact, error) {
		called.Store(true)
		return domain.Artifact{}, nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unix.Flock(int(f.Fd()), unix.LOCK_UN))

	artifact, err := c.Do(context.Background(), key, func(context.Context) (domain.Artifact, error) {
		return domain.Artifact{Path: "mod_abc.so"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "mod_abc.so", artifact.Path)
	assert.False(t, called.Load())
}
