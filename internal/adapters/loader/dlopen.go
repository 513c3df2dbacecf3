//go:build (darwin || freebsd || linux) && !android && !faketime

package loader

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/zerr"
)

func open(path string) (domain.Library, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLoadFailed.Error()), "path", path)
	}
	return &library{path: path, handle: handle}, nil
}

type library struct {
	path   string
	mu     sync.Mutex
	handle uintptr
}

func (l *library) Symbol(name string) (unsafe.Pointer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.handle == 0 {
		return nil, zerr.With(domain.ErrModuleNotLoaded, "path", l.path)
	}
	sym, err := purego.Dlsym(l.handle, name)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrSymbolNotFound.Error())
		return nil, zerr.With(zerr.With(err, "symbol", name), "path", l.path)
	}
	return *(*unsafe.Pointer)(unsafe.Pointer(&sym)), nil
}

func (l *library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.handle == 0 {
		return nil
	}
	err := purego.Dlclose(l.handle)
	l.handle = 0
	return err
}
