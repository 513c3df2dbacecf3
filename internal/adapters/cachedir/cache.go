// Package cachedir manages generated sources and their artifacts inside a
// cache directory.
package cachedir

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/mitchellh/go-homedir"
	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/jitc/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.EntryCache = (*Cache)(nil)

// Cache implements ports.EntryCache on the local filesystem.
type Cache struct {
	defaultDir string
	store      ports.BuildInfoStore
}

// New creates a Cache. defaultDir is used when no override is given; build
// records are removed through store.
func New(defaultDir string, store ports.BuildInfoStore) *Cache {
	return &Cache{defaultDir: defaultDir, store: store}
}

// Resolve expands a leading tilde and makes the directory absolute.
func (c *Cache) Resolve(override string) (string, error) {
	dir := override
	if dir == "" {
		dir = c.defaultDir
	}
	if dir == "" {
		dir = domain.DefaultCacheDir
	}

	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrCacheDirResolveFailed.Error()), "path", dir)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrCacheDirResolveFailed.Error()), "path", dir)
	}
	return abs, nil
}

// Write creates the entry directory and replaces the entry file. The content
// is written to a temporary file first so concurrent readers never observe a
// partial file.
func (c *Cache) Write(entry *domain.Entry) error {
	if err := os.MkdirAll(entry.Dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheDirCreateFailed.Error()), "path", entry.Dir)
	}

	tmp, err := os.CreateTemp(entry.Dir, "."+entry.ID+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", entry.Path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.WriteString(entry.Render()); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", entry.Path)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", entry.Path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", entry.Path)
	}
	if err := os.Rename(tmpName, entry.Path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", entry.Path)
	}
	return nil
}

// List returns the entries in dir. A missing directory has no entries.
func (c *Cache) List(dir string) ([]domain.CachedEntry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", dir)
	}

	var entries []domain.CachedEntry
	for _, f := range files {
		id, ok := strings.CutSuffix(f.Name(), domain.SourceExt)
		if !ok || f.IsDir() || domain.ValidateModuleName(id) != nil {
			continue
		}
		info, err := f.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}

		entry := domain.CachedEntry{
			ID:         id,
			SourcePath: filepath.Join(dir, f.Name()),
			Size:       info.Size(),
			ModTime:    info.ModTime(),
		}
		if artifact, ok := findArtifact(dir, id); ok {
			entry.HasArtifact = true
			entry.ArtifactSize = artifact.Size()
		}
		entries = append(entries, entry)
	}

	slices.SortFunc(entries, func(a, b domain.CachedEntry) int {
		return strings.Compare(a.ID, b.ID)
	})
	return entries, nil
}

// Remove deletes the source, artifacts, lock file and build record of an entry.
func (c *Cache) Remove(dir, entryID string) error {
	if err := domain.ValidateModuleName(entryID); err != nil {
		return zerr.With(domain.ErrEntryNotFound, "entry", entryID)
	}

	files, err := entryFiles(dir, entryID)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return zerr.With(domain.ErrEntryNotFound, "entry", entryID)
	}

	for _, f := range files {
		if err := os.Remove(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(err, domain.ErrCacheRemoveFailed.Error()), "path", f)
		}
	}
	return c.store.Delete(dir, entryID)
}

// Clean removes every entry in dir.
func (c *Cache) Clean(dir string) (int, error) {
	entries, err := c.List(dir)
	if err != nil {
		return 0, err
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for _, e := range entries {
		g.Go(func() error {
			return c.Remove(dir, e.ID)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// entryFiles returns every file that belongs to an entry: the source, the
// lock, the native artifact, artifacts with an interpreter specific suffix and
// files rendered by the python importer.
func entryFiles(dir, id string) ([]string, error) {
	var files []string
	for _, pattern := range []string{id + ".*", ".rendered." + id + ".*"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrGlobFailed.Error()), "pattern", pattern)
		}
		files = append(files, matches...)
	}
	return files, nil
}

func findArtifact(dir, id string) (fs.FileInfo, bool) {
	candidates := []string{filepath.Join(dir, id+domain.LibraryExt)}
	if matches, err := filepath.Glob(filepath.Join(dir, id+".*"+domain.LibraryExt)); err == nil {
		candidates = append(candidates, matches...)
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return info, true
		}
	}
	return nil, false
}
