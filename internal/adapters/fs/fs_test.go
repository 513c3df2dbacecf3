package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jitc/internal/adapters/fs"
	"go.trai.ch/jitc/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWalker_WalkFiles(t *testing.T) {
	// tmp/
	//   .git/config
	//   .jitc/record.json
	//   ignored/file
	//   include/kernel.h
	//   README.md
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "config"), "git config")
	writeFile(t, filepath.Join(tmpDir, domain.StoreDirName, "record.json"), "{}")
	writeFile(t, filepath.Join(tmpDir, "ignored", "file"), "ignored content")
	writeFile(t, filepath.Join(tmpDir, "include", "kernel.h"), "#pragma once")
	writeFile(t, filepath.Join(tmpDir, "README.md"), "# Readme")

	walker := fs.NewWalker()

	files := make(map[string]bool)
	for path := range walker.WalkFiles(tmpDir, []string{"ignored"}) {
		rel, err := filepath.Rel(tmpDir, path)
		require.NoError(t, err)
		files[rel] = true
	}

	assert.False(t, files[filepath.Join(".git", "config")])
	assert.False(t, files[filepath.Join(domain.StoreDirName, "record.json")])
	assert.False(t, files[filepath.Join("ignored", "file")])
	assert.True(t, files[filepath.Join("include", "kernel.h")])
	assert.True(t, files["README.md"])
}

func newHasher(t *testing.T, algorithm domain.HashAlgorithm) *fs.Hasher {
	t.Helper()
	hasher, err := fs.NewHasher(fs.NewWalker(), algorithm)
	require.NoError(t, err)
	return hasher
}

func TestNewHasher_UnknownAlgorithm(t *testing.T) {
	_, err := fs.NewHasher(fs.NewWalker(), "sha1")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownHashAlgorithm.Error())
}

func TestHasher_HashSource_MD5(t *testing.T) {
	hasher := newHasher(t, domain.HashMD5)

	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3", hasher.HashSource("hello world"))
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", hasher.HashSource(""))
}

func TestHasher_HashSource_XXHash(t *testing.T) {
	hasher := newHasher(t, domain.HashXXHash)

	hash := hasher.HashSource("hello world")
	assert.Len(t, hash, 16)
	assert.Equal(t, hash, hasher.HashSource("hello world"))
}

func TestHasher_HashSource_NoNormalization(t *testing.T) {
	hasher := newHasher(t, domain.HashMD5)

	a := hasher.HashSource("int f() { return 1; }")
	b := hasher.HashSource("int f() {  return 1; }")
	c := hasher.HashSource("int f() { return 1; }\n")

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestHasher_ComputeFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hasher_test")
	writeFile(t, path, "hello world")

	hasher := newHasher(t, domain.HashMD5)

	hash1, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	assert.NotZero(t, hash1)

	hash2, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, hash1, hash2)
}

func TestHasher_ComputeFileHash_Missing(t *testing.T) {
	hasher := newHasher(t, domain.HashMD5)

	_, err := hasher.ComputeFileHash(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorContains(t, err, domain.ErrFileOpenFailed.Error())
}

func TestHasher_ComputeInputHash(t *testing.T) {
	tmpDir := t.TempDir()
	entry := &domain.Entry{
		ID:     "mod_abc",
		Path:   filepath.Join(tmpDir, "mod_abc.cpp"),
		Config: domain.BuildConfig{CompilerArgs: []string{"-O2"}},
	}
	writeFile(t, entry.Path, "int x;")
	header := filepath.Join(tmpDir, "include", "kernel.h")
	writeFile(t, header, "#define N 3")
	inputs := []string{filepath.Join(tmpDir, "include")}

	hasher := newHasher(t, domain.HashMD5)

	hash1, err := hasher.ComputeInputHash(entry, inputs)
	require.NoError(t, err)

	again, err := hasher.ComputeInputHash(entry, inputs)
	require.NoError(t, err)
	assert.Equal(t, hash1, again)

	// Configuration changes the hash.
	changed := *entry
	changed.Config = domain.BuildConfig{CompilerArgs: []string{"-O3"}}
	hash2, err := hasher.ComputeInputHash(&changed, inputs)
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash2)

	// Moving a value to another field changes the hash.
	moved := *entry
	moved.Config = domain.BuildConfig{LinkerArgs: []string{"-O2"}}
	hash3, err := hasher.ComputeInputHash(&moved, inputs)
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash3)

	// Dependency content changes the hash.
	writeFile(t, header, "#define N 4")
	hash4, err := hasher.ComputeInputHash(entry, inputs)
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash4)

	// Entry file content changes the hash.
	writeFile(t, entry.Path, "int y;")
	hash5, err := hasher.ComputeInputHash(entry, inputs)
	require.NoError(t, err)
	assert.NotEqual(t, hash4, hash5)
}

func TestHasher_ComputeInputHash_MissingInput(t *testing.T) {
	tmpDir := t.TempDir()
	entry := &domain.Entry{ID: "mod_abc", Path: filepath.Join(tmpDir, "mod_abc.cpp")}
	writeFile(t, entry.Path, "int x;")

	hasher := newHasher(t, domain.HashMD5)

	_, err := hasher.ComputeInputHash(entry, []string{filepath.Join(tmpDir, "gone.h")})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPathStatFailed.Error())
}
