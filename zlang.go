// Package zlang compiles zlang source into bytecode functions stored in a
// library.Library.
//
// A program is a sequence of function definitions:
//
//	function area(w, h) {
//		return w * h;
//	}
//
// Calls must resolve to a function in the same program, a function already
// in the target library, or a native function registered by the host:
//
//	lib, err := zlang.Compile(source, zlang.WithBuiltins())
//	if err != nil {
//		return err
//	}
//	fn, _ := lib.Function("area", 2)
package zlang

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/zlang-io/zlang/compiler"
	"github.com/zlang-io/zlang/library"
	"github.com/zlang-io/zlang/project"
)

// Option configures a compilation.
type Option func(*options)

type options struct {
	natives       []library.NativeFunction
	filename      string
	logger        zerolog.Logger
	partialCommit bool
	lib           *library.Library
}

func collectOptions(opts ...Option) *options {
	o := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) compilerOpts() []compiler.Option {
	opts := []compiler.Option{compiler.WithLogger(o.logger)}
	if o.filename != "" {
		opts = append(opts, compiler.WithFilename(o.filename))
	}
	if o.partialCommit {
		opts = append(opts, compiler.WithPartialCommit())
	}
	return opts
}

// library returns the target library, creating one if none was supplied.
// Natives are registered in either case.
func (o *options) library(source string) (*library.Library, error) {
	if o.lib == nil {
		return library.New(source, library.WithLogger(o.logger), library.WithNatives(o.natives...)), nil
	}
	o.lib.SetSourceText(source)
	for _, fn := range o.natives {
		if err := o.lib.RegisterNative(fn); err != nil {
			return nil, err
		}
	}
	return o.lib, nil
}

// WithNatives makes host functions callable from the program. This option
// is additive.
func WithNatives(natives ...library.NativeFunction) Option {
	return func(o *options) {
		o.natives = append(o.natives, natives...)
	}
}

// WithBuiltins makes the standard natives (print, len, array, str) callable.
func WithBuiltins() Option {
	return WithNatives(library.Builtins()...)
}

// WithFilename sets the filename reported in compile errors.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithLogger sets the logger used by the compiler and the library.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPartialCommit registers each function as soon as it compiles, so a
// failed compilation keeps the functions that preceded the error.
func WithPartialCommit() Option {
	return func(o *options) {
		o.partialCommit = true
	}
}

// WithLibrary compiles into an existing library instead of a new one.
// Functions already in the library may be called by the program.
func WithLibrary(lib *library.Library) Option {
	return func(o *options) {
		o.lib = lib
	}
}

// Builtins returns the standard native functions.
func Builtins() []library.NativeFunction {
	return library.Builtins()
}

// Compile compiles a program and returns the library holding its functions.
// The first problem found is returned as an *errors.CompileError.
func Compile(source string, opts ...Option) (*library.Library, error) {
	o := collectOptions(opts...)
	lib, err := o.library(source)
	if err != nil {
		return nil, err
	}
	if _, err := compiler.CompileRegistry(lib, o.compilerOpts()...); err != nil {
		return nil, err
	}
	return lib, nil
}

// CompileFile reads and compiles the program at path. The path is used as
// the filename in errors unless WithFilename is given.
func CompileFile(path string, opts ...Option) (*library.Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return Compile(string(data), append([]Option{WithFilename(path)}, opts...)...)
}

// CompileProject compiles every source file of a project into one library,
// in manifest order. A file may call functions defined in files compiled
// before it. The natives declared by the manifest are registered as
// placeholders so that calls to them validate.
func CompileProject(m *project.Manifest, opts ...Option) (*library.Library, error) {
	paths, err := m.SourcePaths()
	if err != nil {
		return nil, err
	}
	o := collectOptions(opts...)
	lib := o.lib
	if lib == nil {
		lib = library.New("", library.WithLogger(o.logger))
	}
	natives := append(m.NativeFunctions(), o.natives...)
	for _, fn := range natives {
		if err := lib.RegisterNative(fn); err != nil {
			return nil, err
		}
	}
	fileOpts := []Option{WithLibrary(lib), WithLogger(o.logger)}
	if o.partialCommit {
		fileOpts = append(fileOpts, WithPartialCommit())
	}
	for _, path := range paths {
		if _, err := CompileFile(path, fileOpts...); err != nil {
			return nil, err
		}
	}
	o.logger.Debug().
		Str("project", m.Project.Name).
		Int("files", len(paths)).
		Msg("compiled project")
	return lib, nil
}
