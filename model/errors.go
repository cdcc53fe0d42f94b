// SPDX-License-Identifier: MIT

package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInstance is matched by every validation failure.
	ErrInvalidInstance = errors.New("model: invalid instance")

	// ErrInvalidPath is returned by CheckPath and the path evaluators.
	ErrInvalidPath = errors.New("model: invalid path")

	// ErrUnknownNode is returned when a Solomon instance references a node id
	// that is not present in its node list.
	ErrUnknownNode = errors.New("model: unknown node")
)

// ValidationError names the offending field and, when relevant, the index
// inside it. Index is -1 for scalar fields.
type ValidationError struct {
	Field  string
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("model: invalid %s: %s", e.Field, e.Reason)
	}

	return fmt.Sprintf("model: invalid %s[%d]: %s", e.Field, e.Index, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidInstance) hold.
func (e *ValidationError) Unwrap() error { return ErrInvalidInstance }

func invalid(field string, index int, format string, args ...any) error {
	return &ValidationError{Field: field, Index: index, Reason: fmt.Sprintf(format, args...)}
}

// pathErrorf wraps ErrInvalidPath with the position of the offending step.
func pathErrorf(pos int, format string, args ...any) error {
	return fmt.Errorf("%w: step %d: %s", ErrInvalidPath, pos, fmt.Sprintf(format, args...))
}
