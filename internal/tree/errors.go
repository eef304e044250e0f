package tree

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPathConflict reports two fields whose paths would force one node to be
	// a leaf and a scope at the same time.
	ErrPathConflict = errors.New("path conflict")
	// ErrDuplicateField reports two descriptors with the same name.
	ErrDuplicateField = errors.New("duplicate field")
)

// PathConflictError names both fields of a path conflict.
type PathConflictError struct {
	// Field is the field being inserted when the conflict was detected.
	Field     string
	FieldPath []string
	// Other is the already inserted field.
	Other     string
	OtherPath []string
}

func (e *PathConflictError) Error() string {
	what := "is a prefix of"
	switch {
	case len(e.FieldPath) == len(e.OtherPath):
		what = "has the same path as"
	case len(e.FieldPath) > len(e.OtherPath):
		what = "extends the path of"
	}

	return fmt.Sprintf("%v: field %q (%s) %s field %q (%s)",
		ErrPathConflict,
		e.Field, strings.Join(e.FieldPath, "."),
		what,
		e.Other, strings.Join(e.OtherPath, "."))
}

func (e *PathConflictError) Unwrap() error {
	return ErrPathConflict
}
