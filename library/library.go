// Package library stores compiled zlang functions and the native functions
// supplied by the host, keyed by name and arity.
package library

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/zlang-io/zlang/bytecode"
)

// Registry is what the compiler needs from a function store.
type Registry interface {
	// Register stores a compiled function, replacing any previous function
	// with the same name and arity.
	Register(fn *bytecode.Function) error

	// HasFunction reports whether a compiled or native function accepts a
	// call with the given name and argument count.
	HasFunction(name string, arity int) bool

	// SourceText returns the program text the registry was created for.
	SourceText() string
}

// Library is an in-memory Registry. It is safe for concurrent use.
type Library struct {
	mu        sync.RWMutex
	source    string
	functions map[string]*bytecode.Function
	natives   map[string]NativeFunction // fixed arity, keyed by name/arity
	varArgs   map[string]NativeFunction // keyed by name
	logger    zerolog.Logger
	pending   []NativeFunction
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger used to report registrations.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Library) {
		l.logger = logger
	}
}

// WithNatives registers native functions when the library is created.
// Natives that cannot be registered are logged and skipped.
func WithNatives(natives ...NativeFunction) Option {
	return func(l *Library) {
		l.pending = append(l.pending, natives...)
	}
}

// New returns an empty Library holding the given program text.
func New(source string, opts ...Option) *Library {
	l := &Library{
		source:    source,
		functions: map[string]*bytecode.Function{},
		natives:   map[string]NativeFunction{},
		varArgs:   map[string]NativeFunction{},
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	for _, fn := range l.pending {
		if err := l.RegisterNative(fn); err != nil {
			l.logger.Warn().Err(err).Msg("skipping native function")
		}
	}
	l.pending = nil
	return l
}

// SourceText returns the program text.
func (l *Library) SourceText() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.source
}

// SetSourceText replaces the program text, e.g. before compiling another
// file into the same library.
func (l *Library) SetSourceText(source string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.source = source
}

// Register stores a compiled function.
func (l *Library) Register(fn *bytecode.Function) error {
	if fn == nil {
		return fmt.Errorf("cannot register a nil function")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	key := fn.Key()
	if _, ok := l.natives[key]; ok {
		return fmt.Errorf("%s is already registered as a native function", key)
	}
	_, replaced := l.functions[key]
	l.functions[key] = fn
	l.logger.Debug().
		Str("function", key).
		Bool("replaced", replaced).
		Msg("registered function")
	return nil
}

// RegisterNative stores a native function.
func (l *Library) RegisterNative(fn NativeFunction) error {
	if fn == nil {
		return fmt.Errorf("cannot register a nil native function")
	}
	name := fn.Name()
	if name == "" {
		return fmt.Errorf("native function has no name")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if fn.IsVarArgs() {
		l.varArgs[name] = fn
		l.logger.Debug().Str("native", name).Bool("varargs", true).Msg("registered native function")
		return nil
	}
	if fn.ParameterCount() < 0 {
		return fmt.Errorf("native function %s has a negative parameter count", name)
	}
	key := bytecode.FunctionKey(name, fn.ParameterCount())
	if _, ok := l.functions[key]; ok {
		return fmt.Errorf("%s is already registered as a compiled function", key)
	}
	l.natives[key] = fn
	l.logger.Debug().Str("native", key).Msg("registered native function")
	return nil
}

// HasFunction reports whether a call with the given name and argument count
// resolves. Variable-argument natives accept any count.
func (l *Library) HasFunction(name string, arity int) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	key := bytecode.FunctionKey(name, arity)
	if _, ok := l.functions[key]; ok {
		return true
	}
	if _, ok := l.natives[key]; ok {
		return true
	}
	_, ok := l.varArgs[name]
	return ok
}

// Function returns the compiled function with the given name and arity.
func (l *Library) Function(name string, arity int) (*bytecode.Function, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn, ok := l.functions[bytecode.FunctionKey(name, arity)]
	return fn, ok
}

// Native returns the native function a call with the given name and argument
// count resolves to. Fixed-arity natives take precedence.
func (l *Library) Native(name string, arity int) (NativeFunction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if fn, ok := l.natives[bytecode.FunctionKey(name, arity)]; ok {
		return fn, true
	}
	fn, ok := l.varArgs[name]
	return fn, ok
}

// Functions returns the compiled functions sorted by name, then arity.
func (l *Library) Functions() []*bytecode.Function {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fns := make([]*bytecode.Function, 0, len(l.functions))
	for _, fn := range l.functions {
		fns = append(fns, fn)
	}
	sort.Slice(fns, func(i, j int) bool {
		if fns[i].Name() != fns[j].Name() {
			return fns[i].Name() < fns[j].Name()
		}
		return fns[i].Arity() < fns[j].Arity()
	})
	return fns
}

// Names returns the sorted, distinct names of all compiled and native
// functions.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	seen := map[string]bool{}
	for _, fn := range l.functions {
		seen[fn.Name()] = true
	}
	for _, fn := range l.natives {
		seen[fn.Name()] = true
	}
	for name := range l.varArgs {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Image returns the compiled functions as an Image. Natives are not part of
// an image; the host registers them again after loading.
func (l *Library) Image() *bytecode.Image {
	return &bytecode.Image{Functions: l.Functions()}
}

// LoadImage validates every function in img and registers them all. Nothing
// is registered if any function is invalid.
func (l *Library) LoadImage(img *bytecode.Image) error {
	if err := img.Validate(); err != nil {
		return fmt.Errorf("invalid image: %w", err)
	}
	for _, fn := range img.Functions {
		if err := l.Register(fn); err != nil {
			return err
		}
	}
	l.logger.Debug().
		Str("build_id", img.BuildID).
		Int("functions", len(img.Functions)).
		Msg("loaded image")
	return nil
}
