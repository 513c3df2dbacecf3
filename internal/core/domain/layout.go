package domain

import "path/filepath"

const (
	// CacheDirEnv overrides the cache directory location.
	CacheDirEnv = "FENICS_CACHE_DIR"

	// DefaultCacheDir is used when no override is given. The tilde is expanded
	// against the current user's home directory.
	DefaultCacheDir = "~/.cache/fenics"

	// SourceExt is the extension of generated source files.
	SourceExt = ".cpp"

	// LibraryExt is the extension of compiled artifacts.
	LibraryExt = ".so"

	// LockExt is the extension of per-entry lock files.
	LockExt = ".lock"

	// StoreDirName is the name of the build record directory inside the cache.
	StoreDirName = ".jitc"

	// ConfigFileName is the default name of the configuration file.
	ConfigFileName = "jitc.yaml"

	// ConfigPathEnv overrides the configuration file location.
	ConfigPathEnv = "JITC_CONFIG"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// StorePath returns the build record directory for a cache directory.
func StorePath(cacheDir string) string {
	return filepath.Join(cacheDir, StoreDirName)
}
