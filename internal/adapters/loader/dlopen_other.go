//go:build !((darwin || freebsd || linux) && !android && !faketime)

package loader

import (
	"runtime"

	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/zerr"
)

func open(path string) (domain.Library, error) {
	return nil, zerr.With(zerr.With(domain.ErrLoaderUnsupported, "path", path), "os", runtime.GOOS)
}
