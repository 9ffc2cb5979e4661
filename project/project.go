// Package project handles zlang.toml project configuration.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/zlang-io/zlang/library"
)

// FileName is the name of the manifest file at the root of a project.
const FileName = "zlang.toml"

// Image formats.
const (
	FormatCBOR = "cbor"
	FormatJSON = "json"
)

// Manifest represents a zlang.toml project configuration.
type Manifest struct {
	Project Project     `toml:"project"`
	Source  Source      `toml:"source"`
	Natives []Native    `toml:"natives"`
	Image   ImageConfig `toml:"image"`

	// Dir is the directory containing the zlang.toml file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Source configures source file locations. Files are glob patterns relative
// to the project directory.
type Source struct {
	Files []string `toml:"files"`
}

// Native declares a function the host provides at run time. Calls to it
// validate during compilation.
type Native struct {
	Name    string `toml:"name"`
	Arity   int    `toml:"arity"`
	VarArgs bool   `toml:"varargs"`
}

// ImageConfig configures image output.
type ImageConfig struct {
	Output string `toml:"output"`
	Format string `toml:"format"`
}

// Load parses a zlang.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	if m.Image.Output == "" && m.Project.Name != "" {
		m.Image.Output = m.Project.Name + ".zimg"
	}
	return m, nil
}

// Parse decodes and validates manifest text. Dir is left empty.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, err
	}

	// Defaults
	if len(m.Source.Files) == 0 {
		m.Source.Files = []string{"*.z"}
	}
	if m.Image.Format == "" {
		m.Image.Format = FormatCBOR
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// FindAndLoad walks up from startDir to find a zlang.toml file, then loads
// and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return Load(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Validate reports every problem with the manifest.
func (m *Manifest) Validate() error {
	var result *multierror.Error
	switch m.Image.Format {
	case FormatCBOR, FormatJSON:
	default:
		result = multierror.Append(result, fmt.Errorf("image format %q is not one of %s, %s",
			m.Image.Format, FormatCBOR, FormatJSON))
	}
	seen := map[string]bool{}
	for i, n := range m.Natives {
		if n.Name == "" {
			result = multierror.Append(result, fmt.Errorf("natives[%d]: missing name", i))
			continue
		}
		if !n.VarArgs && n.Arity < 0 {
			result = multierror.Append(result, fmt.Errorf("native %s: negative arity %d", n.Name, n.Arity))
		}
		key := n.key()
		if seen[key] {
			result = multierror.Append(result, fmt.Errorf("native %s is declared more than once", key))
		}
		seen[key] = true
	}
	return result.ErrorOrNil()
}

func (n Native) key() string {
	if n.VarArgs {
		return n.Name + "/..."
	}
	return fmt.Sprintf("%s/%d", n.Name, n.Arity)
}

// Function returns a placeholder native for the declaration. Calling it
// fails until the host binds a real implementation.
func (n Native) Function() library.NativeFunction {
	unbound := func(args []any) (any, error) {
		return nil, fmt.Errorf("native function %s is not bound", n.key())
	}
	if n.VarArgs {
		return library.NewVarArgsNative(n.Name, unbound)
	}
	return library.NewNative(n.Name, n.Arity, unbound)
}

// NativeFunctions returns placeholders for every declared native.
func (m *Manifest) NativeFunctions() []library.NativeFunction {
	natives := make([]library.NativeFunction, 0, len(m.Natives))
	for _, n := range m.Natives {
		natives = append(natives, n.Function())
	}
	return natives
}

// SourcePaths expands the source patterns into distinct absolute paths, in
// pattern order. A pattern that matches nothing is an error.
func (m *Manifest) SourcePaths() ([]string, error) {
	seen := map[string]bool{}
	var paths []string
	for _, pattern := range m.Source.Files {
		matches, err := filepath.Glob(filepath.Join(m.Dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad source pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("source pattern %q matched no files", pattern)
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				paths = append(paths, match)
			}
		}
	}
	return paths, nil
}

// OutputPath returns the absolute path of the image file.
func (m *Manifest) OutputPath() string {
	if filepath.IsAbs(m.Image.Output) {
		return m.Image.Output
	}
	return filepath.Join(m.Dir, m.Image.Output)
}
