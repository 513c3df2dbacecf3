package domain

import "slices"

// Platform is the baseline configuration supplied by the numerical platform the
// generated code targets. It is always merged in front of caller values.
type Platform struct {
	IncludeDirs       []string `yaml:"include_dirs" json:"include_dirs,omitempty"`
	DefineMacros      []string `yaml:"define_macros" json:"define_macros,omitempty"`
	Libraries         []string `yaml:"libraries" json:"libraries,omitempty"`
	LibraryDirs       []string `yaml:"library_dirs" json:"library_dirs,omitempty"`
	WrapperIncludeDir string   `yaml:"wrapper_include_dir" json:"wrapper_include_dir,omitempty"`
	CxxStandard       string   `yaml:"cxx_standard" json:"cxx_standard,omitempty"`
}

// BaselineIncludeDirs returns the platform include directories followed by the
// wrapper include directory.
func (p Platform) BaselineIncludeDirs() []string {
	dirs := slices.Clone(p.IncludeDirs)
	if p.WrapperIncludeDir != "" {
		dirs = append(dirs, p.WrapperIncludeDir)
	}
	return dirs
}

// BaselineCompilerArgs returns the language standard flag followed by one -D
// flag per define macro.
func (p Platform) BaselineCompilerArgs() []string {
	args := make([]string, 0, len(p.DefineMacros)+1)
	if p.CxxStandard != "" {
		args = append(args, "-std="+p.CxxStandard)
	}
	for _, macro := range p.DefineMacros {
		args = append(args, "-D"+macro)
	}
	return args
}

// Extend appends the values of other after the values of p.
// Scalar fields of other win when they are set.
func (p Platform) Extend(other Platform) Platform {
	out := Platform{
		IncludeDirs:       append(slices.Clone(p.IncludeDirs), other.IncludeDirs...),
		DefineMacros:      append(slices.Clone(p.DefineMacros), other.DefineMacros...),
		Libraries:         append(slices.Clone(p.Libraries), other.Libraries...),
		LibraryDirs:       append(slices.Clone(p.LibraryDirs), other.LibraryDirs...),
		WrapperIncludeDir: p.WrapperIncludeDir,
		CxxStandard:       p.CxxStandard,
	}
	if other.WrapperIncludeDir != "" {
		out.WrapperIncludeDir = other.WrapperIncludeDir
	}
	if other.CxxStandard != "" {
		out.CxxStandard = other.CxxStandard
	}
	return out
}

// Merge combines the platform baseline with a caller configuration.
//
// Include dirs, compiler args, libraries and library dirs start from the
// baseline and are followed by the caller values in their original order.
// Sources, dependencies and linker args come from the caller only.
// The caller slices are never aliased.
func Merge(p Platform, c BuildConfig) BuildConfig {
	return BuildConfig{
		Sources:      slices.Clone(c.Sources),
		Dependencies: slices.Clone(c.Dependencies),
		IncludeDirs:  append(p.BaselineIncludeDirs(), c.IncludeDirs...),
		CompilerArgs: append(p.BaselineCompilerArgs(), c.CompilerArgs...),
		Libraries:    append(slices.Clone(p.Libraries), c.Libraries...),
		LibraryDirs:  append(slices.Clone(p.LibraryDirs), c.LibraryDirs...),
		LinkerArgs:   slices.Clone(c.LinkerArgs),
	}
}
