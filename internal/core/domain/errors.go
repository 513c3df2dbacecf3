package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidModuleName is returned when a module name cannot be used as a symbol name.
	ErrInvalidModuleName = zerr.New("module name must be a C identifier")

	// ErrInvalidConfigValue is returned when a build configuration value cannot be embedded in the preamble.
	ErrInvalidConfigValue = zerr.New("invalid build configuration value")

	// ErrUnknownHashAlgorithm is returned when the configured source hash algorithm is not supported.
	ErrUnknownHashAlgorithm = zerr.New("unknown hash algorithm, expected 'md5' or 'xxhash'")

	// ErrUnknownImporter is returned when the configured importer is not supported.
	ErrUnknownImporter = zerr.New("unknown importer, expected 'toolchain' or 'cppimport'")

	// ErrInvalidLogLevel is returned when the configured log level cannot be parsed.
	ErrInvalidLogLevel = zerr.New("invalid log level")

	// ErrCacheDirResolveFailed is returned when the cache directory path cannot be resolved.
	ErrCacheDirResolveFailed = zerr.New("failed to resolve cache directory")

	// ErrCacheDirCreateFailed is returned when the cache directory cannot be created.
	ErrCacheDirCreateFailed = zerr.New("failed to create cache directory")

	// ErrCacheWriteFailed is returned when a cache entry file cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write cache entry")

	// ErrCacheReadFailed is returned when the cache directory cannot be listed.
	ErrCacheReadFailed = zerr.New("failed to read cache directory")

	// ErrCacheRemoveFailed is returned when a cache entry cannot be removed.
	ErrCacheRemoveFailed = zerr.New("failed to remove cache entry")

	// ErrEntryNotFound is returned when a cache entry does not exist.
	ErrEntryNotFound = zerr.New("cache entry not found")

	// ErrStoreCreateFailed is returned when the build info store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build info store directory")

	// ErrStoreReadFailed is returned when the build info cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build info")

	// ErrStoreUnmarshalFailed is returned when the build info cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build info")

	// ErrStoreMarshalFailed is returned when the build info cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build info")

	// ErrStoreWriteFailed is returned when the build info cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build info")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrEnvParseFailed is returned when environment overrides cannot be parsed.
	ErrEnvParseFailed = zerr.New("failed to parse environment overrides")

	// ErrInputNotFound is returned when a declared source or dependency does not exist.
	ErrInputNotFound = zerr.New("input not found")

	// ErrGlobFailed is returned when an input pattern is malformed.
	ErrGlobFailed = zerr.New("failed to glob path")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrCommandFailed is returned when an external command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrPkgConfigFailed is returned when pkg-config cannot describe the platform package.
	ErrPkgConfigFailed = zerr.New("failed to query pkg-config")

	// ErrPkgConfigParseFailed is returned when pkg-config output cannot be split into flags.
	ErrPkgConfigParseFailed = zerr.New("failed to parse pkg-config output")

	// ErrImportOutputMissing is returned when the python importer does not report a module path.
	ErrImportOutputMissing = zerr.New("importer did not report a module path")

	// ErrLockFailed is returned when the cross-process build lock cannot be acquired.
	ErrLockFailed = zerr.New("failed to acquire build lock")

	// ErrLoadFailed is returned when a compiled artifact cannot be loaded.
	ErrLoadFailed = zerr.New("failed to load module")

	// ErrLoaderUnsupported is returned when the platform cannot load shared objects.
	ErrLoaderUnsupported = zerr.New("loading shared objects is not supported on this platform")

	// ErrModuleNotLoaded is returned when a symbol is requested from a module that was not loaded in-process.
	ErrModuleNotLoaded = zerr.New("module is not loaded in this process")

	// ErrSymbolNotFound is returned when a loaded module does not export a symbol.
	ErrSymbolNotFound = zerr.New("symbol not found")

	// ErrNoSourceGiven is returned when the compile command receives no source file.
	ErrNoSourceGiven = zerr.New("no source file given")
)
