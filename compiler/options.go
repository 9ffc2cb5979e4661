package compiler

import "github.com/rs/zerolog"

type config struct {
	filename      string
	logger        zerolog.Logger
	partialCommit bool
}

// Option configures a Compiler.
type Option func(*config)

// WithFilename sets the filename reported in compile errors.
func WithFilename(filename string) Option {
	return func(cfg *config) {
		cfg.filename = filename
	}
}

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithPartialCommit registers each function as soon as it compiles, so
// functions that precede an error stay registered.
func WithPartialCommit() Option {
	return func(cfg *config) {
		cfg.partialCommit = true
	}
}
