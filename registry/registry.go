// Package registry tracks the names of live interpreter instances.
//
// A Registry only enforces uniqueness: it reserves names, generates fresh
// ones on request and releases them. It holds no reference to the instances
// themselves and never mediates execution.
package registry

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
)

// ErrDuplicateName is matched by DuplicateNameError via errors.Is.
var ErrDuplicateName = errors.New("name already reserved")

// DuplicateNameError is returned when reserving a name that is in use.
type DuplicateNameError struct {
	Name string
}

// Error returns the error message.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDuplicateName, e.Name)
}

// Is reports whether target is ErrDuplicateName.
func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// DefaultPrefix is the prefix of generated names.
const DefaultPrefix = "state"

// Registry is a set of reserved names safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	names  map[string]struct{}
	prefix string
	next   uint64
}

// Option configures a Registry.
type Option func(*Registry)

// WithPrefix sets the prefix of generated names.
func WithPrefix(prefix string) Option {
	return func(r *Registry) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		names:  make(map[string]struct{}),
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// Reserve reserves name and returns it. An empty name reserves and returns a
// generated one that differs from every name currently reserved.
func (r *Registry) Reserve(name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		name = r.generate()
	} else if _, exists := r.names[name]; exists {
		return "", &DuplicateNameError{Name: name}
	}
	r.names[name] = struct{}{}
	return name, nil
}

// generate returns the next counter-based name not currently reserved.
// Callers must hold r.mu.
func (r *Registry) generate() string {
	for {
		r.next++
		candidate := r.prefix + "-" + strconv.FormatUint(r.next, 10)
		if _, exists := r.names[candidate]; !exists {
			return candidate
		}
	}
}

// Release frees name. Unknown names are ignored.
func (r *Registry) Release(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.names, name)
}

// Reserved reports whether name is currently reserved.
func (r *Registry) Reserved(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.names[name]
	return ok
}

// Len returns the number of reserved names.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.names)
}
