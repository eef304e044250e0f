package plan

import (
	"pathcodec/internal/tree"
)

// Encode synthesizes the encode operation sequence of a tree.
//
// Every scope is opened for writing, whatever its decode-side requirement,
// so the output always has the full declared shape. Nilable fields are only
// written when non-nil; all others are written unconditionally.
func Encode(t *tree.Tree) []Op {
	if len(t.Fields()) == 0 {
		return nil
	}

	ops := make([]Op, 0, t.Len())

	for _, id := range t.Scopes() {
		n := t.Node(id)
		ops = append(ops, Op{Kind: OpOpenWriteScope, Scope: id, Parent: n.Parent, Key: n.Segment})
	}

	for i, f := range t.Fields() {
		mode := ModeRequired
		if f.Policy.Nilable() {
			mode = ModeIfPresent
		}

		ops = append(ops, Op{
			Kind:  OpWriteField,
			Scope: t.Node(t.Leaf(i)).Parent,
			Key:   f.Key(),
			Field: f.Name,
			Mode:  mode,
		})
	}

	return ops
}
