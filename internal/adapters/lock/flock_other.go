//go:build !unix

package lock

import (
	"context"
	"os"
)

// Without flock only the in-process singleflight applies.
func acquire(ctx context.Context, _ *os.File) error {
	return ctx.Err()
}

func release(_ *os.File) error {
	return nil
}
