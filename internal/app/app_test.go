package app_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jitc/internal/adapters/cachedir"
	"go.trai.ch/jitc/internal/adapters/cas"
	jitcfs "go.trai.ch/jitc/internal/adapters/fs"
	"go.trai.ch/jitc/internal/adapters/lock"
	"go.trai.ch/jitc/internal/adapters/searchpath"
	"go.trai.ch/jitc/internal/adapters/telemetry"
	"go.trai.ch/jitc/internal/adapters/toolchain"
	"go.trai.ch/jitc/internal/app"
	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/jitc/internal/core/ports"
	"go.trai.ch/jitc/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var baseline = domain.Platform{
	IncludeDirs:       []string{"/usr/include/dolfinx"},
	WrapperIncludeDir: "/usr/include/wrappers",
	DefineMacros:      []string{"HAS_PETSC"},
	Libraries:         []string{"dolfinx"},
	LibraryDirs:       []string{"/usr/lib"},
	CxxStandard:       "c++17",
}

type fixture struct {
	app        *app.App
	importer   *mocks.MockImporter
	searchPath *searchpath.Registry
	cacheDir   string
}

func newFixture(t *testing.T, imp ports.Importer) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	provider := mocks.NewMockPlatformProvider(ctrl)
	provider.EXPECT().Platform(gomock.Any()).Return(baseline, nil).AnyTimes()
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	hasher, err := jitcfs.NewHasher(jitcfs.NewWalker(), domain.HashMD5)
	require.NoError(t, err)

	f := &fixture{
		searchPath: searchpath.New("/site-packages"),
		cacheDir:   filepath.Join(t.TempDir(), "cache"),
	}
	if imp == nil {
		f.importer = mocks.NewMockImporter(ctrl)
		imp = f.importer
	}
	f.app = app.New(
		provider,
		hasher,
		cachedir.New(f.cacheDir, cas.NewStore()),
		f.searchPath,
		imp,
		lock.NewCoordinator(),
		telemetry.NewNoop(),
		log,
	)
	return f
}

func TestEmit_IncludeDirsBaselineOnly(t *testing.T) {
	f := newFixture(t, nil)

	entry, err := f.app.Emit(context.Background(), app.CompileRequest{Name: "form", Source: "int x;"})
	require.NoError(t, err)

	assert.Equal(t, []string{"/usr/include/dolfinx", "/usr/include/wrappers"}, entry.Config.IncludeDirs)
	assert.Equal(t, []string{"-std=c++17", "-DHAS_PETSC"}, entry.Config.CompilerArgs)
	assert.Empty(t, entry.Config.Sources)
}

func TestEmit_BaselineThenCallerValues(t *testing.T) {
	f := newFixture(t, nil)

	cfg, err := domain.NewBuildConfig(
		domain.WithIncludeDirs("/opt/extra"),
		domain.WithCompilerArgs("-O3"),
		domain.WithLibraries("petsc"),
	)
	require.NoError(t, err)

	entry, err := f.app.Emit(context.Background(), app.CompileRequest{Name: "form", Source: "int x;", Config: cfg})
	require.NoError(t, err)

	assert.Equal(t, []string{"/usr/include/dolfinx", "/usr/include/wrappers", "/opt/extra"}, entry.Config.IncludeDirs)
	assert.Equal(t, []string{"-std=c++17", "-DHAS_PETSC", "-O3"}, entry.Config.CompilerArgs)
	assert.Equal(t, []string{"dolfinx", "petsc"}, entry.Config.Libraries)
	assert.Equal(t, []string{"/opt/extra"}, cfg.IncludeDirs)
}

func TestEmit_WhitespaceChangesID(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	a, err := f.app.Emit(ctx, app.CompileRequest{Name: "form", Source: "int x;"})
	require.NoError(t, err)
	b, err := f.app.Emit(ctx, app.CompileRequest{Name: "form", Source: "int x; "})
	require.NoError(t, err)
	c, err := f.app.Emit(ctx, app.CompileRequest{Name: "other", Source: "int x;"})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Hash, c.Hash)
	assert.FileExists(t, a.Path)
	assert.FileExists(t, b.Path)
}

func TestEmit_ReplacesEveryPlaceholder(t *testing.T) {
	f := newFixture(t, nil)
	source := "PYBIND11_MODULE(SIGNATURE, m) { m.doc() = \"SIGNATURE\"; }"

	entry, err := f.app.Emit(context.Background(), app.CompileRequest{Name: "form", Source: source})
	require.NoError(t, err)

	data, err := os.ReadFile(entry.Path)
	require.NoError(t, err)
	content := string(data)

	assert.Equal(t, 2, entry.PlaceholderCount)
	assert.NotContains(t, content, domain.PlaceholderToken)
	assert.Equal(t, 2, strings.Count(content, entry.ID))
	assert.True(t, strings.HasPrefix(content, "\n/*\n<%\nsetup_pybind11(cfg)\n"))
	assert.True(t, strings.HasSuffix(content, "m.doc() = \""+entry.ID+"\"; }"))
}

func TestEmit_InvalidRequest(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.app.Emit(ctx, app.CompileRequest{Name: "bad-name", Source: "int x;"})
	assert.ErrorContains(t, err, domain.ErrInvalidModuleName.Error())

	_, err = f.app.Emit(ctx, app.CompileRequest{
		Name:   "form",
		Source: "int x;",
		Config: domain.BuildConfig{LinkerArgs: []string{"-Wl,*/"}},
	})
	assert.ErrorContains(t, err, domain.ErrInvalidConfigValue.Error())

	_, statErr := os.Stat(f.cacheDir)
	assert.ErrorIs(t, statErr, fs.ErrNotExist)
}

func TestCompile_UnwritableCacheDir(t *testing.T) {
	f := newFixture(t, nil)

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	mod, err := f.app.Compile(context.Background(), app.CompileRequest{
		Name:     "form",
		Source:   "int x;",
		CacheDir: filepath.Join(blocker, "cache"),
	})
	require.Error(t, err)
	assert.Nil(t, mod)

	var pathErr *fs.PathError
	assert.ErrorAs(t, err, &pathErr)
	assert.ErrorContains(t, err, domain.ErrCacheDirCreateFailed.Error())
}

func TestCompile_RegistersCacheDirAndDelegates(t *testing.T) {
	f := newFixture(t, nil)

	f.importer.EXPECT().Build(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry *domain.Entry, dirs []string) (domain.Artifact, error) {
			assert.Equal(t, []string{"/site-packages", entry.Dir}, dirs)
			assert.FileExists(t, entry.Path)
			return domain.Artifact{Path: entry.ArtifactPath()}, nil
		})
	f.importer.EXPECT().Load(gomock.Any(), gomock.Any()).DoAndReturn(
		func(entry *domain.Entry, artifact domain.Artifact) (*domain.Module, error) {
			return &domain.Module{Name: entry.Name, EntryID: entry.ID, LibraryPath: artifact.Path}, nil
		})

	mod, err := f.app.Compile(context.Background(), app.CompileRequest{Name: "form", Source: "int x;"})
	require.NoError(t, err)

	assert.Equal(t, "form", mod.Name)
	assert.True(t, strings.HasPrefix(mod.EntryID, "form_"))
	assert.Equal(t, []string{"/site-packages", f.cacheDir}, f.searchPath.Dirs())
}

func TestCompile_ImporterErrorIsReturnedAsIs(t *testing.T) {
	f := newFixture(t, nil)
	importErr := errors.New("error: expected ';' before '}' token")

	f.importer.EXPECT().Build(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Artifact{}, importErr)

	mod, err := f.app.Compile(context.Background(), app.CompileRequest{Name: "form", Source: "int x"})
	assert.Nil(t, mod)
	assert.Same(t, importErr, err)
}

type fakeLibrary struct {
	closed atomic.Bool
}

func (l *fakeLibrary) Symbol(string) (unsafe.Pointer, error) {
	if l.closed.Load() {
		return nil, domain.ErrModuleNotLoaded
	}
	return unsafe.Pointer(l), nil
}

func (l *fakeLibrary) Close() error {
	l.closed.Store(true)
	return nil
}

// fakeCompiler writes the artifact named after -o.
func fakeCompiler(_ context.Context, cmd *domain.Command) error {
	for i, arg := range cmd.Args {
		if arg == "-o" {
			return os.WriteFile(cmd.Args[i+1], []byte("ELF"), 0o600)
		}
	}
	return errors.New("no output flag")
}

func newToolchain(t *testing.T, executor ports.Executor, loader ports.Loader) ports.Importer {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	hasher, err := jitcfs.NewHasher(jitcfs.NewWalker(), domain.HashMD5)
	require.NoError(t, err)

	return toolchain.New("c++", toolchain.Deps{
		Executor: executor,
		Resolver: jitcfs.NewResolver(),
		Hasher:   hasher,
		Verifier: jitcfs.NewVerifier(),
		Store:    cas.NewStore(),
		Loader:   loader,
		Logger:   log,
	})
}

func TestCompile_SecondCallReusesArtifact(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)
	loader := mocks.NewMockLoader(ctrl)

	executor.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(fakeCompiler).Times(1)
	loader.EXPECT().Open(gomock.Any()).DoAndReturn(func(string) (domain.Library, error) {
		return &fakeLibrary{}, nil
	}).Times(2)

	f := newFixture(t, newToolchain(t, executor, loader))
	req := app.CompileRequest{Name: "form", Source: "PYBIND11_MODULE(SIGNATURE, m) {}"}

	first, err := f.app.Compile(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	// Make a rewrite visible even on coarse mtime filesystems.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(first.LibraryPath, past, past))
	info, err := os.Stat(first.LibraryPath)
	require.NoError(t, err)

	second, err := f.app.Compile(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.EntryID, second.EntryID)

	again, err := os.Stat(second.LibraryPath)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), again.ModTime())
}

func TestCompile_ConcurrentCallersOwnTheirModules(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)
	loader := mocks.NewMockLoader(ctrl)

	executor.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(fakeCompiler).MinTimes(1)
	loader.EXPECT().Open(gomock.Any()).DoAndReturn(func(string) (domain.Library, error) {
		return &fakeLibrary{}, nil
	}).Times(2)

	f := newFixture(t, newToolchain(t, executor, loader))
	req := app.CompileRequest{Name: "form", Source: "PYBIND11_MODULE(SIGNATURE, m) {}"}

	var wg sync.WaitGroup
	mods := make([]*domain.Module, 2)
	for i := range mods {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mod, err := f.app.Compile(context.Background(), req)
			assert.NoError(t, err)
			mods[i] = mod
		}()
	}
	wg.Wait()
	require.NotNil(t, mods[0])
	require.NotNil(t, mods[1])
	assert.NotSame(t, mods[0], mods[1])

	require.NoError(t, mods[0].Close())
	_, err := mods[1].Symbol("PyInit_form")
	assert.NoError(t, err)
}

func TestListRemoveClean(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	a, err := f.app.Emit(ctx, app.CompileRequest{Name: "a", Source: "int a;"})
	require.NoError(t, err)
	_, err = f.app.Emit(ctx, app.CompileRequest{Name: "b", Source: "int b;"})
	require.NoError(t, err)

	dir, entries, err := f.app.List("")
	require.NoError(t, err)
	assert.Equal(t, f.cacheDir, dir)
	assert.Len(t, entries, 2)

	require.NoError(t, f.app.Remove("", a.ID))
	assert.NoFileExists(t, a.Path)

	n, err := f.app.Clean("")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, entries, err = f.app.List("")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCompile_LocksEntryAndRecordsVertex(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockPlatformProvider(ctrl)
	hasher := mocks.NewMockHasher(ctrl)
	cache := mocks.NewMockEntryCache(ctrl)
	searchPath := mocks.NewMockSearchPath(ctrl)
	imp := mocks.NewMockImporter(ctrl)
	coordinator := mocks.NewMockCoordinator(ctrl)
	tel := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	importErr := errors.New("undefined reference to `dolfinx::init'")

	provider.EXPECT().Platform(gomock.Any()).Return(domain.Platform{}, nil)
	hasher.EXPECT().HashSource("int x;").Return("d41d8c")
	cache.EXPECT().Resolve("").Return("/cache", nil)
	cache.EXPECT().Write(gomock.Any()).Return(nil)
	searchPath.EXPECT().Register("/cache")
	searchPath.EXPECT().Dirs().Return([]string{"/cache"})
	tel.EXPECT().Record(gomock.Any(), "compile form_d41d8c").DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ports.ContextWithVertex(ctx, vertex), vertex
		})
	coordinator.EXPECT().Do(gomock.Any(), "/cache/form_d41d8c.lock", gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, fn func(context.Context) (domain.Artifact, error)) (domain.Artifact, error) {
			return fn(ctx)
		})
	imp.EXPECT().Build(gomock.Any(), gomock.Any(), []string{"/cache"}).DoAndReturn(
		func(ctx context.Context, entry *domain.Entry, _ []string) (domain.Artifact, error) {
			v, ok := ports.VertexFromContext(ctx)
			assert.True(t, ok)
			assert.Equal(t, vertex, v)
			assert.Equal(t, "form_d41d8c", entry.ID)
			return domain.Artifact{}, importErr
		})
	vertex.EXPECT().Complete(importErr)

	a := app.New(provider, hasher, cache, searchPath, imp, coordinator, tel, log)
	_, err := a.Compile(context.Background(), app.CompileRequest{Name: "form", Source: "int x;"})
	assert.Same(t, importErr, err)
}
