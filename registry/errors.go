package registry

import (
	"errors"
	"fmt"

	"github.com/npillmayer/xstyle/manifest"
)

var (
	// ErrNotFound is wrapped by all lookup misses.
	ErrNotFound = errors.New("entity not found")
	// ErrMalformed is wrapped by errors for definitions of invalid shape.
	ErrMalformed = errors.New("malformed definition")
	// ErrDuplicate is wrapped by errors for definitions re-using a name.
	ErrDuplicate = errors.New("duplicate definition")
)

// NotFoundError is the error for a lookup miss. Its message names the kind of
// entity, the module and the name.
type NotFoundError struct {
	Entity string // display name of the entity kind, e.g. "CSS variable"
	Key    manifest.Key
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found: no %q in module %s; make sure module %s is compiled before modules referencing it",
		e.Entity, e.Key, e.Key.Name, e.Key.Module, e.Key.Module)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
