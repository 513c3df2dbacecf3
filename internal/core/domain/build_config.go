package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// BuildConfig holds the compiler and linker settings for a single cache entry.
// Every field is optional. The zero value is a valid, empty configuration.
type BuildConfig struct {
	// Sources are additional translation units compiled together with the entry.
	Sources []string `yaml:"sources" json:"sources,omitempty"`
	// Dependencies are header files whose changes force a rebuild.
	Dependencies []string `yaml:"dependencies" json:"dependencies,omitempty"`
	// IncludeDirs are passed as -I flags.
	IncludeDirs []string `yaml:"include_dirs" json:"include_dirs,omitempty"`
	// CompilerArgs are passed verbatim to the compiler.
	CompilerArgs []string `yaml:"compiler_args" json:"compiler_args,omitempty"`
	// Libraries are passed as -l flags.
	Libraries []string `yaml:"libraries" json:"libraries,omitempty"`
	// LibraryDirs are passed as -L flags.
	LibraryDirs []string `yaml:"library_dirs" json:"library_dirs,omitempty"`
	// LinkerArgs are passed verbatim to the linker.
	LinkerArgs []string `yaml:"linker_args" json:"linker_args,omitempty"`
}

// BuildOption configures a BuildConfig.
type BuildOption func(*BuildConfig)

// WithSources appends additional source files.
func WithSources(sources ...string) BuildOption {
	return func(c *BuildConfig) { c.Sources = append(c.Sources, sources...) }
}

// WithDependencies appends header dependencies.
func WithDependencies(deps ...string) BuildOption {
	return func(c *BuildConfig) { c.Dependencies = append(c.Dependencies, deps...) }
}

// WithIncludeDirs appends include directories.
func WithIncludeDirs(dirs ...string) BuildOption {
	return func(c *BuildConfig) { c.IncludeDirs = append(c.IncludeDirs, dirs...) }
}

// WithCompilerArgs appends compiler arguments.
func WithCompilerArgs(args ...string) BuildOption {
	return func(c *BuildConfig) { c.CompilerArgs = append(c.CompilerArgs, args...) }
}

// WithLibraries appends libraries to link.
func WithLibraries(libs ...string) BuildOption {
	return func(c *BuildConfig) { c.Libraries = append(c.Libraries, libs...) }
}

// WithLibraryDirs appends library search directories.
func WithLibraryDirs(dirs ...string) BuildOption {
	return func(c *BuildConfig) { c.LibraryDirs = append(c.LibraryDirs, dirs...) }
}

// WithLinkerArgs appends linker arguments.
func WithLinkerArgs(args ...string) BuildOption {
	return func(c *BuildConfig) { c.LinkerArgs = append(c.LinkerArgs, args...) }
}

// NewBuildConfig builds a BuildConfig from the given options and validates it.
func NewBuildConfig(opts ...BuildOption) (BuildConfig, error) {
	var cfg BuildConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return BuildConfig{}, err
	}
	return cfg, nil
}

// Validate checks that every value can be embedded in the generated preamble.
func (c BuildConfig) Validate() error {
	for _, field := range c.fields() {
		for i, value := range field.values {
			if err := validateConfigValue(value); err != nil {
				return zerr.With(zerr.With(err, "field", field.name), "index", i)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c BuildConfig) Clone() BuildConfig {
	return BuildConfig{
		Sources:      slices.Clone(c.Sources),
		Dependencies: slices.Clone(c.Dependencies),
		IncludeDirs:  slices.Clone(c.IncludeDirs),
		CompilerArgs: slices.Clone(c.CompilerArgs),
		Libraries:    slices.Clone(c.Libraries),
		LibraryDirs:  slices.Clone(c.LibraryDirs),
		LinkerArgs:   slices.Clone(c.LinkerArgs),
	}
}

type configField struct {
	name   string
	values []string
}

// fields lists the configuration in preamble order.
func (c BuildConfig) fields() []configField {
	return []configField{
		{"sources", c.Sources},
		{"dependencies", c.Dependencies},
		{"include_dirs", c.IncludeDirs},
		{"compiler_args", c.CompilerArgs},
		{"libraries", c.Libraries},
		{"library_dirs", c.LibraryDirs},
		{"linker_args", c.LinkerArgs},
	}
}

// preambleTerminators would close the comment or template block early.
var preambleTerminators = []string{"*/", "%>"}

func validateConfigValue(value string) error {
	if strings.ContainsAny(value, "\n\r\x00") {
		return zerr.With(zerr.With(ErrInvalidConfigValue, "reason", "contains a line break or NUL"), "value", value)
	}
	for _, marker := range preambleTerminators {
		if strings.Contains(value, marker) {
			return zerr.With(zerr.With(ErrInvalidConfigValue, "reason", "contains "+marker), "value", value)
		}
	}
	return nil
}
