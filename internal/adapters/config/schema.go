package config

// Jitcfile represents the structure of the jitc.yaml configuration file.
type Jitcfile struct {
	CacheDir  string       `yaml:"cache_dir"`
	Hash      string       `yaml:"hash"`
	Log       LogDTO       `yaml:"log"`
	Toolchain ToolchainDTO `yaml:"toolchain"`
	Platform  PlatformDTO  `yaml:"platform"`
}

// LogDTO represents the logging section.
type LogDTO struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ToolchainDTO selects the compile-and-import facility and its programs.
type ToolchainDTO struct {
	Importer  string `yaml:"importer"`
	Compiler  string `yaml:"compiler"`
	Python    string `yaml:"python"`
	PkgConfig string `yaml:"pkg_config"`
}

// PlatformDTO is the static platform baseline. Package names the pkg-config
// package queried for the rest of the baseline.
type PlatformDTO struct {
	Package           *string  `yaml:"package"`
	IncludeDirs       []string `yaml:"include_dirs"`
	DefineMacros      []string `yaml:"define_macros"`
	Libraries         []string `yaml:"libraries"`
	LibraryDirs       []string `yaml:"library_dirs"`
	WrapperIncludeDir string   `yaml:"wrapper_include_dir"`
	CxxStandard       string   `yaml:"cxx_standard"`
}
