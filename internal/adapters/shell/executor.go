// Package shell provides the process executor adapter used to run the
// compiler, pkg-config and the python importer.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/jitc/internal/core/domain"
	"go.trai.ch/jitc/internal/core/ports"
	"go.trai.ch/zerr"
)

// stderrTailLines is how many trailing stderr lines are attached to a failure.
const stderrTailLines = 20

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Run executes the command. Output goes to the logger, and also to the vertex
// in ctx when there is one.
func (e *Executor) Run(ctx context.Context, c *domain.Command) error {
	stdout, flush := e.stdout(ctx)
	defer flush()
	return e.run(ctx, c, stdout)
}

// Output executes the command and returns what it wrote to stdout.
func (e *Executor) Output(ctx context.Context, c *domain.Command) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.run(ctx, c, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Executor) run(ctx context.Context, c *domain.Command, stdout io.Writer) error {
	if len(c.Args) == 0 {
		return nil
	}

	name := c.Args[0]
	cmdEnv := resolveEnvironment(os.Environ(), c.Env)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, c.Args[1:]...) //nolint:gosec // configured toolchain command
	// Keep the name as invoked rather than the resolved path.
	cmd.Args[0] = name
	cmd.Dir = c.Dir
	cmd.Env = cmdEnv

	tail := &tailWriter{max: stderrTailLines}
	stderr, flush := e.stderr(ctx)
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, tail)

	err := cmd.Run()
	flush()
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "command", c.Name)
		wrapped = zerr.With(wrapped, "exit_code", exitCode)
		if t := tail.String(); t != "" {
			wrapped = zerr.With(wrapped, "stderr", t)
		}
		return wrapped
	}

	return nil
}

func (e *Executor) stdout(ctx context.Context) (io.Writer, func()) {
	w := &logWriter{log: e.logger.Debug}
	if v, ok := ports.VertexFromContext(ctx); ok {
		return io.MultiWriter(v.Stdout(), w), w.Flush
	}
	return w, w.Flush
}

// stderr is logged at warn level so compiler diagnostics of a successful
// build reach the user.
func (e *Executor) stderr(ctx context.Context) (io.Writer, func()) {
	w := &logWriter{log: e.logger.Warn}
	if v, ok := ports.VertexFromContext(ctx); ok {
		return io.MultiWriter(v.Stderr(), w), w.Flush
	}
	return w, w.Flush
}

// logWriter forwards complete lines to a log function.
type logWriter struct {
	log func(string)
	mu  sync.Mutex
	buf []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.log(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush logs any trailing partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.buf) > 0 {
		w.log(string(w.buf))
		w.buf = nil
	}
}

// tailWriter keeps the last max lines written to it.
type tailWriter struct {
	max   int
	mu    sync.Mutex
	lines []string
	part  []byte
}

func (w *tailWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.part = append(w.part, p...)
	for {
		i := bytes.IndexByte(w.part, '\n')
		if i < 0 {
			break
		}
		w.lines = append(w.lines, string(w.part[:i]))
		w.part = w.part[i+1:]
	}
	if over := len(w.lines) - w.max; over > 0 {
		w.lines = w.lines[over:]
	}
	return len(p), nil
}

func (w *tailWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	lines := w.lines
	if len(w.part) > 0 {
		lines = append(lines[:len(lines):len(lines)], string(w.part))
	}
	return strings.Join(lines, "\n")
}

// resolveEnvironment applies the command overrides on top of the system environment.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env rather than the current process.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
