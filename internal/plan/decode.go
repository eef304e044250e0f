package plan

import (
	"pathcodec/internal/field"
	"pathcodec/internal/presence"
	"pathcodec/internal/tree"
)

// Decode synthesizes the decode operation sequence of an annotated tree.
//
// Every scope is opened or probed exactly once, up front, in preorder. The
// leaf assignments follow, grouped in one IfPresent/Else/EndIf block per
// probed scope: when a probed scope is absent, every leaf below it takes its
// fallback in the Else branch without further probing.
func Decode(t *tree.Tree, a presence.Annotations) []Op {
	if len(t.Fields()) == 0 {
		return nil
	}

	d := &decodeSynth{tree: t, presence: a}

	d.emit(Op{Kind: OpOpenScope, Scope: tree.Root, Parent: tree.None})

	for _, id := range t.Scopes()[1:] {
		n := t.Node(id)

		kind := OpProbeAbsence
		if a.IsRequired(id) {
			kind = OpOpenScope
		}

		d.emit(Op{Kind: kind, Scope: id, Parent: n.Parent, Key: n.Segment})
	}

	d.assign(tree.Root)

	return d.ops
}

type decodeSynth struct {
	tree     *tree.Tree
	presence presence.Annotations
	ops      []Op
}

func (d *decodeSynth) emit(op Op) {
	d.ops = append(d.ops, op)
}

// assign emits the assignments of every leaf below a present scope.
func (d *decodeSynth) assign(scope tree.NodeID) {
	for _, leaf := range d.tree.Leaves(scope) {
		d.decodeLeaf(scope, leaf)
	}

	for _, child := range d.tree.Children(scope) {
		if d.tree.Node(child).IsLeaf() {
			continue
		}

		if d.presence.IsRequired(child) {
			d.assign(child)
			continue
		}

		d.emit(Op{Kind: OpIfPresent, Scope: child})
		d.assign(child)
		d.emit(Op{Kind: OpElse, Scope: child})

		for _, leaf := range d.tree.Descendants(child) {
			f, _ := d.tree.Field(leaf)
			fb, _ := f.Policy.Fallback()
			d.emit(Op{Kind: OpAssignFallback, Scope: child, Field: f.Name, Mode: ModeIfPresent, Fallback: fb})
		}

		d.emit(Op{Kind: OpEndIf, Scope: child})
	}
}

func (d *decodeSynth) decodeLeaf(scope, leaf tree.NodeID) {
	f, _ := d.tree.Field(leaf)
	d.emit(leafOp(OpDecodeInto, scope, f, decodeMode(f)))
}

func decodeMode(f field.Descriptor) Mode {
	if f.Policy.IsRequired() {
		return ModeRequired
	}

	return ModeIfPresent
}

func leafOp(kind OpKind, scope tree.NodeID, f field.Descriptor, mode Mode) Op {
	op := Op{Kind: kind, Scope: scope, Key: f.Key(), Field: f.Name, Mode: mode}
	if mode == ModeIfPresent {
		op.Fallback, _ = f.Policy.Fallback()
	}

	return op
}
