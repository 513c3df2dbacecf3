// Package cppimport builds cache entries through the cppimport Python package.
//
// cppimport reads the build preamble of the generated file, compiles the
// extension next to it and imports it into a Python interpreter. The module is
// therefore not loaded into this process.
package cppimport

import (
	"bytes"
	"context"
	"strings"

	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/jitc/internal/core/ports"
	"go.trai.ch/zerr"
)

// script is run as `python -c script <module> <dir>...`.
const script = `import sys
name = sys.argv[1]
sys.path.extend(sys.argv[2:])
import cppimport
module = cppimport.imp(name)
print(module.__file__)
`

var _ ports.Importer = (*Importer)(nil)

// Importer implements ports.Importer.
type Importer struct {
	python   string
	executor ports.Executor
	logger   ports.Logger
}

// New creates an Importer running the given python interpreter.
func New(python string, executor ports.Executor, logger ports.Logger) *Importer {
	return &Importer{
		python:   python,
		executor: executor,
		logger:   logger,
	}
}

// Build asks cppimport to build and import the entry. cppimport decides on
// its own whether to recompile, so the artifact is never reported as cached.
func (i *Importer) Build(ctx context.Context, entry *domain.Entry, searchPath []string) (domain.Artifact, error) {
	args := append([]string{i.python, "-c", script, entry.ID}, searchPath...)
	cmd := &domain.Command{
		Name: "cppimport " + entry.ID,
		Args: args,
		Dir:  entry.Dir,
	}

	i.logger.Debug("importing module " + entry.ID + " with cppimport")
	out, err := i.executor.Output(ctx, cmd)
	if err != nil {
		return domain.Artifact{}, err
	}

	path := lastLine(out)
	if path == "" {
		return domain.Artifact{}, zerr.With(domain.ErrImportOutputMissing, "entry", entry.ID)
	}
	return domain.Artifact{Path: path}, nil
}

// Load describes the module imported by Build. It holds no library handle.
func (i *Importer) Load(entry *domain.Entry, artifact domain.Artifact) (*domain.Module, error) {
	return &domain.Module{
		Name:        entry.Name,
		EntryID:     entry.ID,
		SourcePath:  entry.Path,
		LibraryPath: artifact.Path,
	}, nil
}

// lastLine returns the last non-empty line of out. Anything the extension
// prints while being imported comes before it.
func lastLine(out []byte) string {
	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	return strings.TrimSpace(string(lines[len(lines)-1]))
}
