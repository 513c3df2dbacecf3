package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// HashAlgorithm selects the digest used for the source part of an entry ID.
type HashAlgorithm string

const (
	// HashMD5 produces 32 hex characters and matches existing cache file names.
	HashMD5 HashAlgorithm = "md5"
	// HashXXHash produces 16 hex characters.
	HashXXHash HashAlgorithm = "xxhash"
)

// Validate reports whether the algorithm is known.
func (h HashAlgorithm) Validate() error {
	switch h {
	case HashMD5, HashXXHash:
		return nil
	default:
		return zerr.With(ErrUnknownHashAlgorithm, "algorithm", string(h))
	}
}

// ImporterKind selects the compile-and-import facility.
type ImporterKind string

const (
	// ImporterToolchain compiles with a C++ compiler and loads the result in process.
	ImporterToolchain ImporterKind = "toolchain"
	// ImporterCppimport delegates to the cppimport Python package.
	ImporterCppimport ImporterKind = "cppimport"
)

// Validate reports whether the importer is known.
func (k ImporterKind) Validate() error {
	switch k {
	case ImporterToolchain, ImporterCppimport:
		return nil
	default:
		return zerr.With(ErrUnknownImporter, "importer", string(k))
	}
}

// LogFormat selects the log output encoding.
type LogFormat string

const (
	// LogFormatText is human readable output.
	LogFormatText LogFormat = "text"
	// LogFormatJSON is one JSON object per line.
	LogFormatJSON LogFormat = "json"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	CacheDir        string        `yaml:"cache_dir" env:"FENICS_CACHE_DIR"`
	Compiler        string        `yaml:"compiler" env:"JITC_CXX"`
	Importer        ImporterKind  `yaml:"importer" env:"JITC_IMPORTER"`
	Python          string        `yaml:"python" env:"JITC_PYTHON"`
	PkgConfig       string        `yaml:"pkg_config" env:"JITC_PKG_CONFIG"`
	PlatformPackage string        `yaml:"platform_package" env:"JITC_PLATFORM_PACKAGE"`
	Hash            HashAlgorithm `yaml:"hash" env:"JITC_HASH"`
	LogLevel        string        `yaml:"log_level" env:"JITC_LOG_LEVEL"`
	LogFormat       LogFormat     `yaml:"log_format" env:"JITC_LOG_FORMAT"`
	// Platform is the static part of the platform baseline.
	Platform Platform `yaml:"platform" env:"-"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		CacheDir:        DefaultCacheDir,
		Compiler:        "c++",
		Importer:        ImporterToolchain,
		Python:          "python3",
		PkgConfig:       "pkg-config",
		PlatformPackage: "dolfinx",
		Hash:            HashMD5,
		LogLevel:        "info",
		LogFormat:       LogFormatText,
		Platform: Platform{
			CxxStandard: "c++17",
		},
	}
}

// Validate checks the enumerated settings.
func (s Settings) Validate() error {
	if err := s.Hash.Validate(); err != nil {
		return err
	}
	if err := s.Importer.Validate(); err != nil {
		return err
	}
	if _, err := ParseLogLevel(s.LogLevel); err != nil {
		return err
	}
	switch s.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return zerr.With(ErrInvalidConfigValue, "log_format", string(s.LogFormat))
	}
	return nil
}

// ParseLogLevel converts a level name to a LogLevel.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogLevelDebug, nil
	case "", "info":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	default:
		return LogLevelInfo, zerr.With(ErrInvalidLogLevel, "level", s)
	}
}
