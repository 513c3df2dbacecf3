package platform_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jitc/internal/adapters/platform"
	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/jitc/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestParseFlags(t *testing.T) {
	got, err := platform.ParseFlags(
		"-I/usr/include/dolfinx -I '/opt/petsc dir/include' -DHAS_PETSC -DNDEBUG=1 " +
			"-pthread -L/usr/lib -ldolfinx -l basix\n",
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"/usr/include/dolfinx", "/opt/petsc dir/include"}, got.IncludeDirs)
	assert.Equal(t, []string{"HAS_PETSC", "NDEBUG=1"}, got.DefineMacros)
	assert.Equal(t, []string{"/usr/lib"}, got.LibraryDirs)
	assert.Equal(t, []string{"dolfinx", "basix"}, got.Libraries)
}

func TestParseFlags_Empty(t *testing.T) {
	got, err := platform.ParseFlags("  \n")
	require.NoError(t, err)
	assert.Equal(t, domain.Platform{}, got)
}

func TestParseFlags_UnterminatedQuote(t *testing.T) {
	_, err := platform.ParseFlags(`-I"/usr/include`)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPkgConfigParseFailed.Error())
}

func TestProvider_StaticOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	static := domain.Platform{IncludeDirs: []string{"/wrap"}, CxxStandard: "c++17"}
	p := platform.NewProvider(static, "pkg-config", "", executor, logger)

	got, err := p.Platform(context.Background())
	require.NoError(t, err)
	assert.Equal(t, static, got)
}

func TestProvider_QueriesPkgConfigOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	executor.EXPECT().
		Output(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd *domain.Command) ([]byte, error) {
			assert.Equal(t, []string{"pkg-config", "--cflags", "--libs", "dolfinx"}, cmd.Args)
			return []byte("-I/usr/include/dolfinx -DHAS_ADIOS2 -L/usr/lib -ldolfinx\n"), nil
		}).
		Times(1)
	logger.EXPECT().Debug(gomock.Any()).Times(1)

	static := domain.Platform{
		IncludeDirs:       []string{"/extra"},
		WrapperIncludeDir: "/wrap",
		CxxStandard:       "c++20",
	}
	p := platform.NewProvider(static, "pkg-config", "dolfinx", executor, logger)

	first, err := p.Platform(context.Background())
	require.NoError(t, err)
	second, err := p.Platform(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"/usr/include/dolfinx", "/extra"}, first.IncludeDirs)
	assert.Equal(t, []string{"HAS_ADIOS2"}, first.DefineMacros)
	assert.Equal(t, []string{"/usr/lib"}, first.LibraryDirs)
	assert.Equal(t, []string{"dolfinx"}, first.Libraries)
	assert.Equal(t, "/wrap", first.WrapperIncludeDir)
	assert.Equal(t, "c++20", first.CxxStandard)
}

func TestProvider_PkgConfigFailureIsRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	gomock.InOrder(
		executor.EXPECT().Output(gomock.Any(), gomock.Any()).Return(nil, errors.New("exit status 1")),
		executor.EXPECT().Output(gomock.Any(), gomock.Any()).Return([]byte("-ldolfinx"), nil),
	)
	logger.EXPECT().Debug(gomock.Any())

	p := platform.NewProvider(domain.Platform{}, "pkg-config", "dolfinx", executor, logger)

	_, err := p.Platform(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPkgConfigFailed.Error())

	got, err := p.Platform(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"dolfinx"}, got.Libraries)
}
