// Package app implements the application layer for jitc.
package app

import (
	"context"
	"fmt"

	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/jitc/internal/core/ports"
)

// App compiles generated sources through the cache.
type App struct {
	platform    ports.PlatformProvider
	hasher      ports.Hasher
	cache       ports.EntryCache
	searchPath  ports.SearchPath
	importer    ports.Importer
	coordinator ports.Coordinator
	telemetry   ports.Telemetry
	logger      ports.Logger
}

// New creates a new App instance.
func New(
	platform ports.PlatformProvider,
	hasher ports.Hasher,
	cache ports.EntryCache,
	searchPath ports.SearchPath,
	importer ports.Importer,
	coordinator ports.Coordinator,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		platform:    platform,
		hasher:      hasher,
		cache:       cache,
		searchPath:  searchPath,
		importer:    importer,
		coordinator: coordinator,
		telemetry:   telemetry,
		logger:      log,
	}
}

// CompileRequest describes one piece of generated code.
type CompileRequest struct {
	// Name prefixes the module name. It must be a C identifier.
	Name string
	// Source is the generated code. Every occurrence of domain.PlaceholderToken
	// is replaced by the entry ID.
	Source string
	// Config holds the caller build configuration. The platform baseline is
	// merged in front of it.
	Config domain.BuildConfig
	// CacheDir overrides the configured cache directory when set.
	CacheDir string
}

// Compile writes the cache entry for req, builds it unless an up to date
// artifact exists, and returns the loaded module.
//
// Errors of the importer are returned as they are.
func (a *App) Compile(ctx context.Context, req CompileRequest) (*domain.Module, error) {
	// 1. Write the entry
	entry, err := a.Emit(ctx, req)
	if err != nil {
		return nil, err
	}

	// 2. Make the cache directory importable
	a.searchPath.Register(entry.Dir)

	// 3. Build, once per entry at a time
	ctx, vertex := a.telemetry.Record(ctx, "compile "+entry.ID)
	artifact, err := a.coordinator.Do(ctx, entry.LockPath(), func(ctx context.Context) (domain.Artifact, error) {
		return a.importer.Build(ctx, entry, a.searchPath.Dirs())
	})
	if err != nil {
		vertex.Complete(err)
		return nil, err
	}
	if artifact.Cached {
		vertex.Cached()
	}

	// 4. Load a handle owned by this caller
	mod, err := a.importer.Load(entry, artifact)
	vertex.Complete(err)
	if err != nil {
		return nil, err
	}

	if mod.Cached {
		a.logger.Debug("reused module " + entry.ID)
	} else {
		a.logger.Info("compiled module " + entry.ID)
	}
	return mod, nil
}

// Emit merges the configuration, derives the entry ID from the source and
// writes the generated file without building it.
func (a *App) Emit(ctx context.Context, req CompileRequest) (*domain.Entry, error) {
	// 1. Validate the request
	if err := domain.ValidateModuleName(req.Name); err != nil {
		return nil, err
	}
	if err := req.Config.Validate(); err != nil {
		return nil, err
	}

	// 2. Merge with the platform baseline
	platform, err := a.platform.Platform(ctx)
	if err != nil {
		return nil, err
	}
	cfg := domain.Merge(platform, req.Config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 3. Derive the entry
	dir, err := a.cache.Resolve(req.CacheDir)
	if err != nil {
		return nil, err
	}
	entry, err := domain.NewEntry(req.Name, a.hasher.HashSource(req.Source), req.Source, cfg, dir)
	if err != nil {
		return nil, err
	}
	a.logger.Debug(fmt.Sprintf("replaced %d occurrences of %s in %s",
		entry.PlaceholderCount, domain.PlaceholderToken, entry.ID))

	// 4. Write it
	if err := a.cache.Write(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns the resolved cache directory and the entries it holds.
func (a *App) List(cacheDir string) (string, []domain.CachedEntry, error) {
	dir, err := a.cache.Resolve(cacheDir)
	if err != nil {
		return "", nil, err
	}
	entries, err := a.cache.List(dir)
	if err != nil {
		return "", nil, err
	}
	return dir, entries, nil
}

// Remove deletes one entry from the cache directory.
func (a *App) Remove(cacheDir, entryID string) error {
	dir, err := a.cache.Resolve(cacheDir)
	if err != nil {
		return err
	}
	if err := a.cache.Remove(dir, entryID); err != nil {
		return err
	}
	a.logger.Info("removed " + entryID)
	return nil
}

// Clean deletes every entry from the cache directory.
func (a *App) Clean(cacheDir string) (int, error) {
	dir, err := a.cache.Resolve(cacheDir)
	if err != nil {
		return 0, err
	}
	n, err := a.cache.Clean(dir)
	if err != nil {
		return 0, err
	}
	a.logger.Info(fmt.Sprintf("removed %d entries from %s", n, dir))
	return n, nil
}
