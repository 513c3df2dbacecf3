// Package loader opens compiled shared objects in the current process.
package loader

import (
	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/jitc/internal/core/ports"
)

var _ ports.Loader = (*Loader)(nil)

// Loader implements ports.Loader.
type Loader struct{}

// New creates a Loader.
func New() *Loader {
	return &Loader{}
}

// Open loads the shared object at path.
func (l *Loader) Open(path string) (domain.Library, error) {
	return open(path)
}
