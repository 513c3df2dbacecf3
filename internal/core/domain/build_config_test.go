package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jitc/internal/core/domain"
)

func TestNewBuildConfig(t *testing.T) {
	cfg, err := domain.NewBuildConfig(
		domain.WithSources("a.cpp"),
		domain.WithSources("b.cpp"),
		domain.WithDependencies("a.h"),
		domain.WithIncludeDirs("/inc"),
		domain.WithCompilerArgs("-O2"),
		domain.WithLibraries("m"),
		domain.WithLibraryDirs("/lib"),
		domain.WithLinkerArgs("-Wl,-z,now"),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.cpp", "b.cpp"}, cfg.Sources)
	assert.Equal(t, []string{"a.h"}, cfg.Dependencies)
	assert.Equal(t, []string{"/inc"}, cfg.IncludeDirs)
	assert.Equal(t, []string{"-O2"}, cfg.CompilerArgs)
	assert.Equal(t, []string{"m"}, cfg.Libraries)
	assert.Equal(t, []string{"/lib"}, cfg.LibraryDirs)
	assert.Equal(t, []string{"-Wl,-z,now"}, cfg.LinkerArgs)
}

func TestNewBuildConfig_Empty(t *testing.T) {
	cfg, err := domain.NewBuildConfig()
	require.NoError(t, err)
	assert.Equal(t, domain.BuildConfig{}, cfg)
}

func TestNewBuildConfig_RejectsUnembeddableValues(t *testing.T) {
	tests := []struct {
		name string
		opt  domain.BuildOption
	}{
		{"newline", domain.WithIncludeDirs("/a\n/b")},
		{"carriage return", domain.WithLinkerArgs("-x\r")},
		{"nul", domain.WithLibraries("m\x00")},
		{"comment end", domain.WithCompilerArgs("-D*/")},
		{"template end", domain.WithLibraryDirs("/lib%>")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewBuildConfig(tt.opt)
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrInvalidConfigValue.Error())
		})
	}
}

func TestNewBuildConfig_KeepsEmbeddableOddValues(t *testing.T) {
	cfg, err := domain.NewBuildConfig(
		domain.WithCompilerArgs(""),
		domain.WithLinkerArgs("-Wl,--no-such-flag"),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, cfg.CompilerArgs)
	assert.Equal(t, []string{"-Wl,--no-such-flag"}, cfg.LinkerArgs)

	entry, err := domain.NewEntry("mod", "h", "int SIGNATURE;", cfg, "/cache")
	require.NoError(t, err)
	assert.Contains(t, entry.Render(), "cfg['compiler_args'] += ['']\n")
}

func TestBuildConfig_Clone(t *testing.T) {
	cfg := domain.BuildConfig{Sources: []string{"a.cpp"}}
	clone := cfg.Clone()
	clone.Sources[0] = "b.cpp"

	assert.Equal(t, "a.cpp", cfg.Sources[0])
}
