package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/jitc/internal/core/domain"
)

func testPlatform() domain.Platform {
	return domain.Platform{
		IncludeDirs:       []string{"/opt/dolfinx/include", "/usr/include/petsc"},
		DefineMacros:      []string{"HAS_PETSC", "PETSC_USE_COMPLEX=0"},
		Libraries:         []string{"dolfinx"},
		LibraryDirs:       []string{"/opt/dolfinx/lib"},
		WrapperIncludeDir: "/opt/dolfinx/wrappers",
		CxxStandard:       "c++17",
	}
}

func TestMerge_EmptyConfigYieldsBaseline(t *testing.T) {
	merged := domain.Merge(testPlatform(), domain.BuildConfig{})

	assert.Equal(t, []string{"/opt/dolfinx/include", "/usr/include/petsc", "/opt/dolfinx/wrappers"}, merged.IncludeDirs)
	assert.Equal(t, []string{"-std=c++17", "-DHAS_PETSC", "-DPETSC_USE_COMPLEX=0"}, merged.CompilerArgs)
	assert.Equal(t, []string{"dolfinx"}, merged.Libraries)
	assert.Equal(t, []string{"/opt/dolfinx/lib"}, merged.LibraryDirs)
	assert.Empty(t, merged.Sources)
	assert.Empty(t, merged.Dependencies)
	assert.Empty(t, merged.LinkerArgs)
}

func TestMerge_BaselineThenCallerValues(t *testing.T) {
	cfg := domain.BuildConfig{
		Sources:      []string{"extra.cpp"},
		Dependencies: []string{"extra.h"},
		IncludeDirs:  []string{"/x"},
		CompilerArgs: []string{"-O3"},
		Libraries:    []string{"m"},
		LibraryDirs:  []string{"/y"},
		LinkerArgs:   []string{"-Wl,--as-needed"},
	}

	merged := domain.Merge(testPlatform(), cfg)

	assert.Equal(t, []string{"/opt/dolfinx/include", "/usr/include/petsc", "/opt/dolfinx/wrappers", "/x"}, merged.IncludeDirs)
	assert.Equal(t, "/x", merged.IncludeDirs[len(merged.IncludeDirs)-1])
	assert.Equal(t, []string{"-std=c++17", "-DHAS_PETSC", "-DPETSC_USE_COMPLEX=0", "-O3"}, merged.CompilerArgs)
	assert.Equal(t, []string{"dolfinx", "m"}, merged.Libraries)
	assert.Equal(t, []string{"/opt/dolfinx/lib", "/y"}, merged.LibraryDirs)
	assert.Equal(t, []string{"extra.cpp"}, merged.Sources)
	assert.Equal(t, []string{"extra.h"}, merged.Dependencies)
	assert.Equal(t, []string{"-Wl,--as-needed"}, merged.LinkerArgs)
}

func TestMerge_DoesNotAliasInputs(t *testing.T) {
	platform := testPlatform()
	cfg := domain.BuildConfig{
		IncludeDirs: make([]string, 1, 8),
		Sources:     []string{"a.cpp"},
	}
	cfg.IncludeDirs[0] = "/x"

	merged := domain.Merge(platform, cfg)
	merged.Sources[0] = "changed.cpp"
	merged.IncludeDirs[0] = "/changed"
	merged.Libraries = append(merged.Libraries, "extra")

	assert.Equal(t, []string{"a.cpp"}, cfg.Sources)
	assert.Equal(t, []string{"/x"}, cfg.IncludeDirs)
	assert.Equal(t, testPlatform(), platform)
}

func TestMerge_ScalarFieldsOptional(t *testing.T) {
	merged := domain.Merge(domain.Platform{IncludeDirs: []string{"/a"}}, domain.BuildConfig{})

	assert.Equal(t, []string{"/a"}, merged.IncludeDirs)
	assert.Empty(t, merged.CompilerArgs)
}

func TestPlatform_Extend(t *testing.T) {
	base := domain.Platform{
		IncludeDirs:       []string{"/static"},
		WrapperIncludeDir: "/wrappers",
		CxxStandard:       "c++17",
	}
	discovered := domain.Platform{
		IncludeDirs:  []string{"/pkg"},
		DefineMacros: []string{"HAS_MPI"},
		Libraries:    []string{"dolfinx"},
		CxxStandard:  "c++20",
	}

	out := base.Extend(discovered)

	assert.Equal(t, []string{"/static", "/pkg"}, out.IncludeDirs)
	assert.Equal(t, []string{"HAS_MPI"}, out.DefineMacros)
	assert.Equal(t, []string{"dolfinx"}, out.Libraries)
	assert.Equal(t, "/wrappers", out.WrapperIncludeDir)
	assert.Equal(t, "c++20", out.CxxStandard)
	assert.Equal(t, []string{"/static"}, base.IncludeDirs)
}
