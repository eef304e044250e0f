package common

import "strconv"

// Namespace hands out identifiers that are unique within it.
// The zero value is an empty namespace ready to use.
type Namespace struct {
	taken map[string]struct{}
	last  map[string]int
}

// NewNamespace creates a namespace with the given names already taken.
func NewNamespace(reserved ...string) *Namespace {
	ns := &Namespace{}
	for _, name := range reserved {
		ns.Reserve(name)
	}

	return ns
}

// Reserve marks name as taken. It returns false if name was already taken.
func (ns *Namespace) Reserve(name string) bool {
	if ns.taken == nil {
		ns.taken = make(map[string]struct{})
	}

	if _, ok := ns.taken[name]; ok {
		return false
	}

	ns.taken[name] = struct{}{}

	return true
}

// Taken reports whether name is in use.
func (ns *Namespace) Taken(name string) bool {
	_, ok := ns.taken[name]
	return ok
}

// Take returns stem itself when free, otherwise the first free stem1, stem2, ...
func (ns *Namespace) Take(stem string) string {
	if ns.Reserve(stem) {
		return stem
	}

	if ns.last == nil {
		ns.last = make(map[string]int)
	}

	for {
		ns.last[stem]++
		name := stem + strconv.Itoa(ns.last[stem])

		if ns.Reserve(name) {
			return name
		}
	}
}
