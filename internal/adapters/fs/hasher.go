package fs

import (
	"crypto/md5" //nolint:gosec // md5 names cache entries, it is not a security boundary
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/jitc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher provides hashing functionality for sources, entries and files.
type Hasher struct {
	walker    *Walker
	algorithm domain.HashAlgorithm
}

// NewHasher creates a new Hasher using the given source hash algorithm.
func NewHasher(walker *Walker, algorithm domain.HashAlgorithm) (*Hasher, error) {
	if err := algorithm.Validate(); err != nil {
		return nil, err
	}
	return &Hasher{walker: walker, algorithm: algorithm}, nil
}

// HashSource returns the hex digest of the source text exactly as given.
func (h *Hasher) HashSource(source string) string {
	if h.algorithm == domain.HashXXHash {
		return fmt.Sprintf("%016x", xxhash.Sum64String(source))
	}
	sum := md5.Sum([]byte(source)) //nolint:gosec // see import
	return hex.EncodeToString(sum[:])
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeInputHash computes a single hash over the generated entry file, the
// merged build configuration and every input file. Directories are walked.
func (h *Hasher) ComputeInputHash(entry *domain.Entry, inputs []string) (string, error) {
	hasher := xxhash.New()

	_, _ = hasher.WriteString(entry.ID)
	_, _ = hasher.Write([]byte{0})
	h.hashConfig(entry.Config, hasher)

	if err := h.hashFile(entry.Path, hasher); err != nil {
		return "", err
	}
	for _, input := range inputs {
		if err := h.hashPath(input, hasher); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// hashConfig hashes every configuration field with section separators so that
// moving a value between fields changes the hash.
func (h *Hasher) hashConfig(cfg domain.BuildConfig, hasher *xxhash.Digest) {
	for _, section := range [][]string{
		cfg.Sources, cfg.Dependencies, cfg.IncludeDirs, cfg.CompilerArgs,
		cfg.Libraries, cfg.LibraryDirs, cfg.LinkerArgs,
	} {
		for _, v := range section {
			_, _ = hasher.WriteString(v)
			_, _ = hasher.Write([]byte{0})
		}
		_, _ = hasher.Write([]byte{0})
	}
}

func (h *Hasher) hashPath(path string, mainHasher io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
	}

	if !info.IsDir() {
		return h.hashFile(path, mainHasher)
	}
	for filePath := range h.walker.WalkFiles(path, nil) {
		if err := h.hashFile(filePath, mainHasher); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hasher) hashFile(path string, mainHasher io.Writer) error {
	_, _ = mainHasher.Write([]byte(path))
	_, _ = mainHasher.Write([]byte{0})

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(mainHasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
