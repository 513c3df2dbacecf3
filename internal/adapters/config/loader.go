// Package config loads jitc settings from defaults, jitc.yaml and the environment.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader.
type Loader struct {
	environ map[string]string
}

// NewLoader creates a Loader reading the process environment.
func NewLoader() *Loader {
	return &Loader{}
}

// NewLoaderWithEnv creates a Loader reading the given environment instead of
// the process environment.
func NewLoaderWithEnv(environ map[string]string) *Loader {
	return &Loader{environ: environ}
}

// Load builds the settings from defaults, then the file at path, then the
// environment. A missing file is skipped.
func (l *Loader) Load(path string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	file, err := readFile(path)
	if err != nil {
		return domain.Settings{}, err
	}
	if file != nil {
		apply(&settings, file)
	}

	opts := env.Options{}
	if l.environ != nil {
		opts.Environment = l.environ
	}
	if err := env.ParseWithOptions(&settings, opts); err != nil {
		return domain.Settings{}, zerr.Wrap(err, domain.ErrEnvParseFailed.Error())
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// ConfigPath returns the configuration file location from JITC_CONFIG, falling
// back to jitc.yaml in the working directory.
func ConfigPath() string {
	if p := os.Getenv(domain.ConfigPathEnv); p != "" {
		return p
	}
	return domain.ConfigFileName
}

func readFile(path string) (*Jitcfile, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Jitcfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return &file, nil
}

func apply(s *domain.Settings, f *Jitcfile) {
	setString(&s.CacheDir, f.CacheDir)
	setString((*string)(&s.Hash), f.Hash)
	setString(&s.LogLevel, f.Log.Level)
	setString((*string)(&s.LogFormat), f.Log.Format)
	setString((*string)(&s.Importer), f.Toolchain.Importer)
	setString(&s.Compiler, f.Toolchain.Compiler)
	setString(&s.Python, f.Toolchain.Python)
	setString(&s.PkgConfig, f.Toolchain.PkgConfig)

	// An explicit empty package disables pkg-config discovery.
	if f.Platform.Package != nil {
		s.PlatformPackage = *f.Platform.Package
	}
	p := &s.Platform
	p.IncludeDirs = append(p.IncludeDirs, f.Platform.IncludeDirs...)
	p.DefineMacros = append(p.DefineMacros, f.Platform.DefineMacros...)
	p.Libraries = append(p.Libraries, f.Platform.Libraries...)
	p.LibraryDirs = append(p.LibraryDirs, f.Platform.LibraryDirs...)
	setString(&p.WrapperIncludeDir, f.Platform.WrapperIncludeDir)
	setString(&p.CxxStandard, f.Platform.CxxStandard)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
