// Package toolchain compiles cache entries with a C++ compiler and loads the
// resulting shared objects in process.
package toolchain

import (
	"context"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/jitc/internal/core/ports"
)

var _ ports.Importer = (*Importer)(nil)

// Importer implements ports.Importer.
type Importer struct {
	compiler string
	executor ports.Executor
	resolver ports.InputResolver
	hasher   ports.Hasher
	verifier ports.Verifier
	store    ports.BuildInfoStore
	loader   ports.Loader
	logger   ports.Logger
}

// Deps holds the collaborators of an Importer.
type Deps struct {
	Executor ports.Executor
	Resolver ports.InputResolver
	Hasher   ports.Hasher
	Verifier ports.Verifier
	Store    ports.BuildInfoStore
	Loader   ports.Loader
	Logger   ports.Logger
}

// New creates an Importer invoking compiler.
func New(compiler string, deps Deps) *Importer {
	return &Importer{
		compiler: compiler,
		executor: deps.Executor,
		resolver: deps.Resolver,
		hasher:   deps.Hasher,
		verifier: deps.Verifier,
		store:    deps.Store,
		loader:   deps.Loader,
		logger:   deps.Logger,
	}
}

// Build compiles the entry unless an up to date artifact exists. The compiled
// module is placed next to the entry, so the search path needs no additional
// directories.
func (i *Importer) Build(ctx context.Context, entry *domain.Entry, _ []string) (domain.Artifact, error) {
	artifact := domain.Artifact{Path: entry.ArtifactPath()}

	// 1. Resolve declared inputs relative to the entry
	sources, err := i.resolver.ResolveInputs(entry.Config.Sources, entry.Dir)
	if err != nil {
		return domain.Artifact{}, err
	}
	deps, err := i.resolver.ResolveInputs(entry.Config.Dependencies, entry.Dir)
	if err != nil {
		return domain.Artifact{}, err
	}

	// 2. Calculate Input Hash
	inputHash, err := i.hasher.ComputeInputHash(entry, slices.Concat(sources, deps))
	if err != nil {
		return domain.Artifact{}, err
	}

	// 3. Check Cache
	artifact.Cached, err = i.checkCacheHit(entry, inputHash)
	if err != nil {
		return domain.Artifact{}, err
	}
	if artifact.Cached {
		i.logger.Debug("reusing compiled module " + entry.ID)
		return artifact, nil
	}

	// 4. Compile
	i.logger.Debug("compiling module " + entry.ID)
	if err := i.executor.Run(ctx, i.compileCommand(entry, sources)); err != nil {
		return domain.Artifact{}, err
	}

	// 5. Update Cache
	info := domain.BuildInfo{
		EntryID:      entry.ID,
		InputHash:    inputHash,
		ArtifactPath: artifact.Path,
		Timestamp:    time.Now(),
	}
	if err := i.store.Put(entry.Dir, info); err != nil {
		return domain.Artifact{}, err
	}
	return artifact, nil
}

// Load opens the artifact in this process.
func (i *Importer) Load(entry *domain.Entry, artifact domain.Artifact) (*domain.Module, error) {
	lib, err := i.loader.Open(artifact.Path)
	if err != nil {
		return nil, err
	}

	return &domain.Module{
		Name:        entry.Name,
		EntryID:     entry.ID,
		SourcePath:  entry.Path,
		LibraryPath: artifact.Path,
		Cached:      artifact.Cached,
		Library:     lib,
	}, nil
}

func (i *Importer) checkCacheHit(entry *domain.Entry, inputHash string) (bool, error) {
	info, err := i.store.Get(entry.Dir, entry.ID)
	if err != nil {
		return false, err
	}
	if info == nil || info.InputHash != inputHash {
		return false, nil
	}
	return i.verifier.VerifyOutputs(entry.Dir, []string{filepath.Base(entry.ArtifactPath())})
}

// compileCommand assembles the compiler invocation:
// cxx <compiler args> -I... -fPIC -shared -o <artifact> <entry> <sources> -L... -l... <linker args>.
func (i *Importer) compileCommand(entry *domain.Entry, sources []string) *domain.Command {
	cfg := entry.Config

	args := []string{i.compiler}
	args = append(args, cfg.CompilerArgs...)
	for _, dir := range cfg.IncludeDirs {
		args = append(args, "-I"+dir)
	}
	args = append(args, "-fPIC", "-shared", "-o", entry.ArtifactPath(), entry.Path)
	args = append(args, sources...)
	for _, dir := range cfg.LibraryDirs {
		args = append(args, "-L"+dir)
	}
	for _, lib := range cfg.Libraries {
		args = append(args, "-l"+lib)
	}
	args = append(args, cfg.LinkerArgs...)

	return &domain.Command{
		Name: "compile " + entry.ID,
		Args: args,
		Dir:  entry.Dir,
	}
}
