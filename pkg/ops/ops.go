// Package ops implements the drafting edit operations: trim, extend,
// offset, fillet, chamfer, transform, align/distribute, and array. All
// operations are pure: input entities are never mutated, new entities
// are returned.
//
// Two distinct failure classes exist. Degenerate geometry and no-match
// queries (parallel lines, no intersection in range, non-positive
// resulting radius) are expected and return an empty or nil result
// with a nil error. Calling an operation with an entity variant it
// does not support is a caller mismatch and returns an error wrapping
// ErrUnsupported.
package ops

import (
	"errors"
	"fmt"

	"github.com/chazu/vellum/pkg/entity"
)

// ErrUnsupported reports that an operation was invoked with an entity
// variant outside its capability matrix.
var ErrUnsupported = errors.New("ops: unsupported entity kind")

func unsupported(op string, e entity.Entity) error {
	return fmt.Errorf("%s: %w: %s", op, ErrUnsupported, e.Kind())
}

// asLine returns e as a line or an unsupported-operation error.
func asLine(op string, e entity.Entity) (*entity.Line, error) {
	l, ok := e.(*entity.Line)
	if !ok {
		return nil, unsupported(op, e)
	}
	return l, nil
}
