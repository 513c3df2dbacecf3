package domain_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jitc/internal/core/domain"
)

func TestNewEntry_ReplacesEveryPlaceholder(t *testing.T) {
	source := "PYBIND11_MODULE(SIGNATURE, m) { m.doc() = \"SIGNATURE\"; }"

	entry, err := domain.NewEntry("mod", "abc123", source, domain.BuildConfig{}, "/cache")
	require.NoError(t, err)

	assert.Equal(t, "mod_abc123", entry.ID)
	assert.Equal(t, 2, entry.PlaceholderCount)
	assert.NotContains(t, entry.Source, domain.PlaceholderToken)
	assert.Equal(t, 2, strings.Count(entry.Source, "mod_abc123"))
	assert.Equal(t, filepath.Join("/cache", "mod_abc123.cpp"), entry.Path)
	assert.Equal(t, filepath.Join("/cache", "mod_abc123.so"), entry.ArtifactPath())
	assert.Equal(t, filepath.Join("/cache", "mod_abc123.lock"), entry.LockPath())
}

func TestNewEntry_NoPlaceholder(t *testing.T) {
	entry, err := domain.NewEntry("mod", "h", "int x;", domain.BuildConfig{}, "/cache")
	require.NoError(t, err)

	assert.Zero(t, entry.PlaceholderCount)
	assert.Equal(t, "int x;", entry.Source)
}

func TestNewEntry_RejectsInvalidName(t *testing.T) {
	for _, name := range []string{"", "1mod", "my-mod", "a b", "mod.x"} {
		t.Run(name, func(t *testing.T) {
			_, err := domain.NewEntry(name, "h", "", domain.BuildConfig{}, "/cache")
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrInvalidModuleName.Error())
		})
	}
}

func TestEntry_Render(t *testing.T) {
	cfg := domain.BuildConfig{
		Sources:      []string{"extra.cpp"},
		IncludeDirs:  []string{"/inc", `/it's`},
		CompilerArgs: []string{"-std=c++17", `-DNAME="x"`},
		Libraries:    []string{"m"},
	}
	entry, err := domain.NewEntry("mod", "h", "int SIGNATURE;\n", cfg, "/cache")
	require.NoError(t, err)

	expected := "\n/*\n<%\n" +
		"setup_pybind11(cfg)\n" +
		"cfg['sources'] += ['extra.cpp']\n" +
		"cfg['dependencies'] += []\n" +
		"cfg['include_dirs'] += ['/inc', '/it\\'s']\n" +
		"cfg['compiler_args'] += ['-std=c++17', '-DNAME=\"x\"']\n" +
		"cfg['libraries'] += ['m']\n" +
		"cfg['library_dirs'] += []\n" +
		"cfg['linker_args'] += []\n" +
		"%>\n*/\n" +
		"int mod_h;\n"
	assert.Equal(t, expected, entry.Render())
}
