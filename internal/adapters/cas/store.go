// Package cas implements the build record store kept next to cache entries.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/jitc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildInfoStore = (*Store)(nil)

// Store implements ports.BuildInfoStore using one JSON file per entry under
// the cache directory.
type Store struct{}

// NewStore creates a new BuildInfoStore.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the build info for an entry.
func (s *Store) Get(cacheDir, entryID string) (*domain.BuildInfo, error) {
	filename := s.filename(cacheDir, entryID)
	//nolint:gosec // Path is constructed from the cache directory and a validated entry ID
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", filename)
	}

	var info domain.BuildInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", filename)
	}

	return &info, nil
}

// Put stores the build info.
func (s *Store) Put(cacheDir string, info domain.BuildInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.filename(cacheDir, info.EntryID)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	//nolint:gosec // Path is constructed from the cache directory and a validated entry ID
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", filename)
	}

	return nil
}

// Delete removes the build info for an entry.
func (s *Store) Delete(cacheDir, entryID string) error {
	filename := s.filename(cacheDir, entryID)
	if err := os.Remove(filename); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheRemoveFailed.Error()), "path", filename)
	}
	return nil
}

func (s *Store) filename(cacheDir, entryID string) string {
	return filepath.Join(domain.StorePath(cacheDir), entryID+".json")
}
