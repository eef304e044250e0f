package tree

import (
	"fmt"
	"slices"

	"pathcodec/internal/field"
)

// NodeID is the arena handle of a node.
type NodeID int

const (
	// Root is the handle of the root scope.
	Root NodeID = 0
	// None is the parent of the root.
	None NodeID = -1
)

// Node is a single tree node. It is either a scope (Field < 0) or a leaf.
type Node struct {
	ID     NodeID
	Parent NodeID
	// Segment is the key of the node inside its parent; empty for the root.
	Segment string
	Depth   int
	// Field is the index of the owning descriptor, -1 for scopes.
	Field int

	children []NodeID
	index    map[string]NodeID
}

// IsLeaf reports whether the node holds a field.
func (n *Node) IsLeaf() bool { return n.Field >= 0 }

// Tree is the merged path structure of all descriptors of one type.
// It is immutable once Build returns.
type Tree struct {
	nodes  []Node
	fields []field.Descriptor
	leaves []NodeID
	keys   KeyTable
}

// Build merges the paths of fields into one tree.
func Build(fields []field.Descriptor) (*Tree, error) {
	t := &Tree{
		nodes:  []Node{{ID: Root, Parent: None, Field: -1}},
		fields: slices.Clone(fields),
		leaves: make([]NodeID, len(fields)),
		keys:   newKeyTable(fields),
	}

	seen := make(map[string]struct{}, len(fields))

	for i, f := range fields {
		if err := f.Validate(); err != nil {
			return nil, err
		}

		if _, ok := seen[f.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
		}

		seen[f.Name] = struct{}{}

		leaf, created, err := t.insert(i)
		if err != nil {
			return nil, err
		}

		t.leaves[i] = leaf
		t.keys.record(t, leaf, created)
	}

	return t, nil
}

// insert adds the path of field i, returning its leaf and the scopes created on the way.
func (t *Tree) insert(i int) (NodeID, []NodeID, error) {
	f := t.fields[i]
	cur := Root

	var created []NodeID

	for depth, seg := range f.Path {
		last := depth == len(f.Path)-1
		child, ok := t.nodes[cur].index[seg]

		if ok {
			n := &t.nodes[child]
			if n.IsLeaf() {
				return None, nil, t.conflict(i, n.Field)
			}

			if last {
				return None, nil, t.conflict(i, t.nodes[t.firstLeaf(child)].Field)
			}

			cur = child

			continue
		}

		fieldIdx := -1
		if last {
			fieldIdx = i
		}

		child = t.add(cur, seg, fieldIdx)
		if !last {
			created = append(created, child)
		}

		cur = child
	}

	return cur, created, nil
}

func (t *Tree) add(parent NodeID, seg string, fieldIdx int) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		ID:      id,
		Parent:  parent,
		Segment: seg,
		Depth:   t.nodes[parent].Depth + 1,
		Field:   fieldIdx,
	})

	p := &t.nodes[parent]
	if p.index == nil {
		p.index = make(map[string]NodeID)
	}

	p.index[seg] = id
	p.children = append(p.children, id)

	return id
}

func (t *Tree) conflict(i, other int) error {
	return &PathConflictError{
		Field:     t.fields[i].Name,
		FieldPath: t.fields[i].Path,
		Other:     t.fields[other].Name,
		OtherPath: t.fields[other].Path,
	}
}

// firstLeaf returns the first leaf below id in preorder.
func (t *Tree) firstLeaf(id NodeID) NodeID {
	for t.nodes[id].Field < 0 {
		id = t.nodes[id].children[0]
	}

	return id
}

// Len returns the number of nodes, root included.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node with the given handle.
func (t *Tree) Node(id NodeID) *Node { return &t.nodes[id] }

// Children returns the children of id in first-seen order.
func (t *Tree) Children(id NodeID) []NodeID { return t.nodes[id].children }

// Child returns the child of id at segment.
func (t *Tree) Child(id NodeID, seg string) (NodeID, bool) {
	c, ok := t.nodes[id].index[seg]
	return c, ok
}

// Fields returns the descriptors in declared order.
func (t *Tree) Fields() []field.Descriptor { return t.fields }

// Field returns the descriptor held by a leaf.
func (t *Tree) Field(id NodeID) (field.Descriptor, bool) {
	n := &t.nodes[id]
	if !n.IsLeaf() {
		return field.Descriptor{}, false
	}

	return t.fields[n.Field], true
}

// Leaf returns the leaf of the i-th declared field.
func (t *Tree) Leaf(i int) NodeID { return t.leaves[i] }

// Keys returns the key table in first-seen order.
func (t *Tree) Keys() KeyTable { return t.keys }

// Walk visits the nodes below id (id included) in preorder.
// Returning false from fn skips the children of the visited node.
func (t *Tree) Walk(id NodeID, fn func(n *Node) bool) {
	if !fn(&t.nodes[id]) {
		return
	}

	for _, c := range t.nodes[id].children {
		t.Walk(c, fn)
	}
}

// Scopes returns every scope node in preorder, root first.
func (t *Tree) Scopes() []NodeID {
	var out []NodeID

	t.Walk(Root, func(n *Node) bool {
		if !n.IsLeaf() {
			out = append(out, n.ID)
		}

		return true
	})

	return out
}

// Leaves returns the leaves directly under id in declared order.
func (t *Tree) Leaves(id NodeID) []NodeID {
	var out []NodeID

	for _, c := range t.nodes[id].children {
		if t.nodes[c].IsLeaf() {
			out = append(out, c)
		}
	}

	t.sortDeclared(out)

	return out
}

// Descendants returns every leaf below id in declared order.
func (t *Tree) Descendants(id NodeID) []NodeID {
	var out []NodeID

	t.Walk(id, func(n *Node) bool {
		if n.IsLeaf() {
			out = append(out, n.ID)
		}

		return true
	})

	t.sortDeclared(out)

	return out
}

// Path returns the segments from the root down to id.
func (t *Tree) Path(id NodeID) []string {
	var out []string
	for ; id > Root; id = t.nodes[id].Parent {
		out = append(out, t.nodes[id].Segment)
	}

	slices.Reverse(out)

	return out
}

func (t *Tree) sortDeclared(ids []NodeID) {
	slices.SortFunc(ids, func(a, b NodeID) int {
		return t.nodes[a].Field - t.nodes[b].Field
	})
}
