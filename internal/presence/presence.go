// Package presence annotates every node of a path tree with its presence
// requirement.
//
// A leaf is Required unless its policy has a fallback. A scope is Required
// when at least one leaf below it is Required, and Probed otherwise. Required
// scopes are opened directly; Probed scopes are tested for absence first.
package presence

import (
	"fmt"

	"pathcodec/internal/common"
	"pathcodec/internal/tree"
)

// Requirement is the presence requirement of a node.
type Requirement int

const (
	// Required - absence is a decode failure.
	Required Requirement = iota
	// Probed - scope whose absence must be checked for and tolerated.
	Probed
	// Optional - leaf whose absence resolves to its fallback.
	Optional
)

// String returns a human-readable requirement.
func (r Requirement) String() string {
	switch r {
	case Required:
		return "required"
	case Probed:
		return "probed"
	case Optional:
		return "optional"
	default:
		return common.UnknownStr
	}
}

// Annotations holds the requirement of every node, indexed by NodeID.
type Annotations struct {
	reqs []Requirement
}

// Of returns the requirement of a node.
func (a Annotations) Of(id tree.NodeID) Requirement { return a.reqs[id] }

// IsRequired reports whether the node is Required.
func (a Annotations) IsRequired(id tree.NodeID) bool { return a.reqs[id] == Required }

// Len returns the number of annotated nodes.
func (a Annotations) Len() int { return len(a.reqs) }

// Plan annotates t bottom-up.
func Plan(t *tree.Tree) (Annotations, error) {
	a := Annotations{reqs: make([]Requirement, t.Len())}
	a.annotate(t, tree.Root)

	// The root is always present.
	a.reqs[tree.Root] = Required

	if err := a.check(t); err != nil {
		return Annotations{}, err
	}

	return a, nil
}

func (a Annotations) annotate(t *tree.Tree, id tree.NodeID) Requirement {
	if f, ok := t.Field(id); ok {
		if f.Policy.IsRequired() {
			a.reqs[id] = Required
		} else {
			a.reqs[id] = Optional
		}

		return a.reqs[id]
	}

	req := Probed
	for _, c := range t.Children(id) {
		if a.annotate(t, c) == Required {
			req = Required
		}
	}

	a.reqs[id] = req

	return req
}

// check asserts that no Required node sits below a Probed scope.
func (a Annotations) check(t *tree.Tree) error {
	for id := 1; id < t.Len(); id++ {
		n := t.Node(tree.NodeID(id))
		if a.reqs[id] == Required && a.reqs[n.Parent] == Probed {
			return fmt.Errorf("required node %q below probed scope %q",
				n.Segment, t.Node(n.Parent).Segment)
		}
	}

	return nil
}
