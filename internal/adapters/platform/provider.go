// Package platform resolves the baseline build configuration of the numerical
// platform from static settings and pkg-config.
package platform

import (
	"context"
	"strings"
	"sync"

	"github.com/kballard/go-shellquote"
	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/jitc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PlatformProvider = (*Provider)(nil)

// Provider implements ports.PlatformProvider.
//
// The baseline is resolved once per process. A failed pkg-config query is not
// cached so a later call can retry.
type Provider struct {
	static    domain.Platform
	pkgConfig string
	pkg       string
	executor  ports.Executor
	logger    ports.Logger

	mu       sync.Mutex
	resolved *domain.Platform
}

// NewProvider creates a Provider. An empty pkg disables the pkg-config query.
func NewProvider(
	static domain.Platform,
	pkgConfig, pkg string,
	executor ports.Executor,
	logger ports.Logger,
) *Provider {
	return &Provider{
		static:    static,
		pkgConfig: pkgConfig,
		pkg:       pkg,
		executor:  executor,
		logger:    logger,
	}
}

// Platform returns the resolved platform baseline.
func (p *Provider) Platform(ctx context.Context) (domain.Platform, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.resolved != nil {
		return *p.resolved, nil
	}

	platform := p.static
	if p.pkg != "" {
		discovered, err := p.query(ctx)
		if err != nil {
			return domain.Platform{}, err
		}
		platform = discovered.Extend(p.static)
	}

	p.resolved = &platform
	return platform, nil
}

func (p *Provider) query(ctx context.Context) (domain.Platform, error) {
	cmd := &domain.Command{
		Name: "pkg-config",
		Args: []string{p.pkgConfig, "--cflags", "--libs", p.pkg},
	}
	out, err := p.executor.Output(ctx, cmd)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrPkgConfigFailed.Error())
		return domain.Platform{}, zerr.With(err, "package", p.pkg)
	}

	platform, err := ParseFlags(string(out))
	if err != nil {
		return domain.Platform{}, zerr.With(err, "package", p.pkg)
	}

	p.logger.Debug("resolved platform package " + p.pkg + " via " + p.pkgConfig)
	return platform, nil
}

// ParseFlags sorts pkg-config style compiler and linker flags into a Platform.
// Flags that do not map to a platform field are ignored.
func ParseFlags(flags string) (domain.Platform, error) {
	words, err := shellquote.Split(strings.TrimSpace(flags))
	if err != nil {
		err = zerr.Wrap(err, domain.ErrPkgConfigParseFailed.Error())
		return domain.Platform{}, zerr.With(err, "output", flags)
	}

	var platform domain.Platform
	for i := 0; i < len(words); i++ {
		word := words[i]
		var target *[]string
		switch {
		case strings.HasPrefix(word, "-I"):
			target = &platform.IncludeDirs
		case strings.HasPrefix(word, "-D"):
			target = &platform.DefineMacros
		case strings.HasPrefix(word, "-L"):
			target = &platform.LibraryDirs
		case strings.HasPrefix(word, "-l"):
			target = &platform.Libraries
		default:
			continue
		}

		value := word[2:]
		if value == "" {
			// Separated form, e.g. "-I dir".
			if i+1 >= len(words) {
				break
			}
			i++
			value = words[i]
		}
		*target = append(*target, value)
	}
	return platform, nil
}
