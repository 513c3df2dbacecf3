package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// PlaceholderToken is replaced by the entry ID everywhere in the source text so
// the compiled module can declare its own name.
const PlaceholderToken = "SIGNATURE"

var moduleNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Entry is one generated source file in the cache directory.
type Entry struct {
	// Name is the caller supplied module name prefix.
	Name string
	// Hash is the hex digest of the unmodified source text.
	Hash string
	// ID is Name and Hash joined by an underscore.
	ID string
	// Source is the text after placeholder substitution.
	Source string
	// PlaceholderCount is the number of placeholder occurrences replaced.
	PlaceholderCount int
	// Config is the merged build configuration.
	Config BuildConfig
	// Dir is the cache directory holding the entry.
	Dir string
	// Path is the absolute path of the generated source file.
	Path string
}

// ValidateModuleName reports whether name can prefix an importable module ID.
func ValidateModuleName(name string) error {
	if !moduleNamePattern.MatchString(name) {
		return zerr.With(ErrInvalidModuleName, "name", name)
	}
	return nil
}

// EntryID joins the module name and source hash.
func EntryID(name, hash string) string {
	return name + "_" + hash
}

// NewEntry creates the cache entry for the given source.
// The hash must be computed over the original source, before substitution.
func NewEntry(name, hash, source string, cfg BuildConfig, dir string) (Entry, error) {
	if err := ValidateModuleName(name); err != nil {
		return Entry{}, err
	}
	id := EntryID(name, hash)
	return Entry{
		Name:             name,
		Hash:             hash,
		ID:               id,
		Source:           strings.ReplaceAll(source, PlaceholderToken, id),
		PlaceholderCount: strings.Count(source, PlaceholderToken),
		Config:           cfg,
		Dir:              dir,
		Path:             filepath.Join(dir, id+SourceExt),
	}, nil
}

// ArtifactPath returns where the compiled shared object for the entry lives.
func (e Entry) ArtifactPath() string {
	return filepath.Join(e.Dir, e.ID+LibraryExt)
}

// LockPath returns the cross-process lock file for the entry.
func (e Entry) LockPath() string {
	return filepath.Join(e.Dir, e.ID+LockExt)
}

// Render returns the full contents of the generated file: the build preamble
// followed by the substituted source.
func (e Entry) Render() string {
	var b strings.Builder
	b.WriteString("\n/*\n<%\n")
	b.WriteString("setup_pybind11(cfg)\n")
	for _, field := range e.Config.fields() {
		fmt.Fprintf(&b, "cfg['%s'] += %s\n", field.name, pythonList(field.values))
	}
	b.WriteString("%>\n*/\n")
	b.WriteString(e.Source)
	return b.String()
}

var pythonEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func pythonList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + pythonEscaper.Replace(v) + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
