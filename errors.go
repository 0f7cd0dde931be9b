package luajs

import (
	"errors"
	"fmt"

	"github.com/Otixa/luajs/engine"
	"github.com/Otixa/luajs/registry"
)

// ErrDuplicateName is returned by New when the requested name is reserved.
var ErrDuplicateName = registry.ErrDuplicateName

// ErrEngine matches every script failure (parse, runtime or load).
var ErrEngine = engine.ErrEngine

// ErrDisposed is matched by DisposedError via errors.Is.
var ErrDisposed = errors.New("state disposed")

// EngineError is the failure shape of script execution.
type EngineError = engine.Error

// DisposedError is returned for requests against a closed State.
type DisposedError struct {
	Name string

	// Task is the ID of the rejected request.
	Task string
}

// Error returns the error message.
func (e *DisposedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDisposed, e.Name)
}

// Is reports whether target is ErrDisposed.
func (e *DisposedError) Is(target error) bool {
	return target == ErrDisposed
}
