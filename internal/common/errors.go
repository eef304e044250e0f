package common

import (
	"slices"
	"strings"

	"github.com/hengadev/errsx"
)

// ErrorMap is the error of a batch collected in an errsx.Map. Unlike the
// bare map its message lists keys in sorted order, and errors.Is / errors.As
// reach the collected errors.
type ErrorMap struct {
	errsx.Map
}

// BatchError returns nil for an empty map.
func BatchError(m errsx.Map) error {
	if m.IsEmpty() {
		return nil
	}

	return &ErrorMap{Map: m}
}

// Keys returns the failed keys, sorted.
func (e *ErrorMap) Keys() []string {
	keys := make([]string, 0, len(e.Map))
	for k := range e.Map {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

func (e *ErrorMap) Error() string {
	parts := make([]string, 0, len(e.Map))
	for _, k := range e.Keys() {
		parts = append(parts, k+": "+e.Map[k].Error())
	}

	return strings.Join(parts, "; ")
}

func (e *ErrorMap) Unwrap() []error {
	errs := make([]error, 0, len(e.Map))
	for _, k := range e.Keys() {
		errs = append(errs, e.Map[k])
	}

	return errs
}
