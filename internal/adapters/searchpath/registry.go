// Package searchpath holds the directories importers look modules up in.
package searchpath

import (
	"slices"
	"sync"

	"go.trai.ch/jitc/internal/core/ports"
)

var _ ports.SearchPath = (*Registry)(nil)

// Registry is an ordered, de-duplicated list of directories safe for
// concurrent use.
type Registry struct {
	mu   sync.RWMutex
	dirs []string
}

// New creates a Registry seeded with dirs.
func New(dirs ...string) *Registry {
	r := &Registry{}
	for _, d := range dirs {
		r.Register(d)
	}
	return r
}

// Register appends dir unless it is already present.
func (r *Registry) Register(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dir == "" || slices.Contains(r.dirs, dir) {
		return
	}
	r.dirs = append(r.dirs, dir)
}

// Dirs returns a copy of the registered directories.
func (r *Registry) Dirs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.dirs)
}
