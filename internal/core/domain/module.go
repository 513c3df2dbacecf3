package domain

import "unsafe"

// Library is a loaded shared object.
type Library interface {
	// Symbol returns the address of the exported symbol.
	Symbol(name string) (unsafe.Pointer, error)
	// Close releases the handle.
	Close() error
}

// Artifact is the outcome of building a cache entry. Callers waiting on the
// same build share it and each load their own Module from it.
type Artifact struct {
	// Path is the compiled extension.
	Path string
	// Cached is true when an up to date artifact was reused.
	Cached bool
}

// Module is the result of compiling and importing a cache entry.
type Module struct {
	Name        string
	EntryID     string
	SourcePath  string
	LibraryPath string
	// Cached is true when the artifact was reused without recompiling.
	Cached bool
	// Library is nil when the module was loaded by a foreign runtime.
	Library Library
}

// Symbol looks up an exported symbol in the loaded library.
func (m *Module) Symbol(name string) (unsafe.Pointer, error) {
	if m.Library == nil {
		return nil, ErrModuleNotLoaded
	}
	return m.Library.Symbol(name)
}

// Close releases the loaded library, if any.
func (m *Module) Close() error {
	if m.Library == nil {
		return nil
	}
	return m.Library.Close()
}
