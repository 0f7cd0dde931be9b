// Package engine defines the contract between an interpreter host and the
// script engine that actually evaluates source text.
//
// An Engine produces Contexts. A Context is one isolated interpreter state:
// it is not safe for concurrent or reentrant use, and callers must serialize
// every method call on it. Engines themselves are stateless and may be shared.
package engine

import "io"

// Engine creates interpreter contexts for one scripting language.
type Engine interface {
	// Name returns the short identifier used in configuration (e.g., "lua").
	Name() string

	// Version returns the engine's language version descriptor verbatim.
	Version() string

	// NewContext creates a fresh interpreter state configured by cfg.
	NewContext(cfg Config) (Context, error)
}

// Context is a single interpreter state owned by exactly one caller.
//
// Contract:
// - Concurrency: not safe for concurrent use; callers serialize all calls.
// - Errors: evaluation failures are returned as *Error.
// - Ownership: returned values are portable (see Normalize) and caller-owned.
type Context interface {
	// Run loads and executes a chunk, returning its result value.
	Run(chunk Chunk) (Value, error)

	// GetGlobal reads a global variable. Unset globals read as nil.
	GetGlobal(name string) (Value, error)

	// SetGlobal writes a portable value as a global variable.
	SetGlobal(name string, v Value) error

	// Close releases the interpreter state. The context must not be used
	// afterwards.
	Close() error
}

// Chunk is a unit of source text handed to a Context.
type Chunk struct {
	// Name identifies the chunk in error messages (a file path or "<string>").
	Name string

	// Source is the script text.
	Source string
}

// DefaultChunkName is used for chunks created from plain strings.
const DefaultChunkName = "<string>"

// StringChunk wraps source text in a Chunk with the default name.
func StringChunk(source string) Chunk {
	return Chunk{Name: DefaultChunkName, Source: source}
}

// Config holds the options applied when a Context is created.
type Config struct {
	// Libraries lists the standard libraries to open. Empty means the
	// engine's default set. Engines without a library concept ignore it.
	Libraries []string

	// Stdout receives output from the script's print functions.
	// Nil means os.Stdout.
	Stdout io.Writer
}
