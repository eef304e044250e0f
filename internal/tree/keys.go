package tree

import (
	"pathcodec/internal/common"
	"pathcodec/internal/field"
)

// KeyKind tells whether a key table entry belongs to a field or to a scope.
type KeyKind int

const (
	// KeyField - key of a leaf, named after the field.
	KeyField KeyKind = iota
	// KeyScope - key of an intermediate scope, named after its segment.
	KeyScope
)

// String returns a human-readable key kind.
func (k KeyKind) String() string {
	switch k {
	case KeyField:
		return "field"
	case KeyScope:
		return "scope"
	default:
		return common.UnknownStr
	}
}

// KeyEntry maps a key name to its wire-level key.
type KeyEntry struct {
	// Name identifies the key in generated plans.
	Name string
	// Key is the wire-level key.
	Key  string
	Kind KeyKind
	// Nodes are the tree nodes using this entry. Scopes sharing a segment
	// at different depths share one entry.
	Nodes []NodeID
}

// KeyTable lists every leaf and scope key in first-seen order.
type KeyTable struct {
	entries []KeyEntry
	byNode  map[NodeID]int
	byName  map[string]int
	scopes  map[string]int
	names   *common.Namespace
}

func newKeyTable(fields []field.Descriptor) KeyTable {
	kt := KeyTable{
		byNode: make(map[NodeID]int),
		byName: make(map[string]int),
		scopes: make(map[string]int),
		names:  common.NewNamespace(),
	}

	for _, f := range fields {
		kt.names.Reserve(f.Name)
	}

	return kt
}

// record adds the entries of a freshly inserted leaf: the leaf first, then
// the scopes created on its way.
func (kt *KeyTable) record(t *Tree, leaf NodeID, created []NodeID) {
	f, _ := t.Field(leaf)
	kt.add(KeyEntry{Name: f.Name, Key: f.Key(), Kind: KeyField}, leaf)

	for _, id := range created {
		seg := t.nodes[id].Segment
		if idx, ok := kt.scopes[seg]; ok {
			kt.entries[idx].Nodes = append(kt.entries[idx].Nodes, id)
			kt.byNode[id] = idx

			continue
		}

		kt.scopes[seg] = kt.add(KeyEntry{Name: kt.names.Take(seg), Key: seg, Kind: KeyScope}, id)
	}
}

func (kt *KeyTable) add(e KeyEntry, id NodeID) int {
	e.Nodes = []NodeID{id}
	idx := len(kt.entries)
	kt.entries = append(kt.entries, e)
	kt.byNode[id] = idx
	kt.byName[e.Name] = idx

	return idx
}

// Entries returns the entries in first-seen order.
func (kt KeyTable) Entries() []KeyEntry { return kt.entries }

// Len returns the number of entries.
func (kt KeyTable) Len() int { return len(kt.entries) }

// Name returns the key name of a node; empty for the root.
func (kt KeyTable) Name(id NodeID) string {
	idx, ok := kt.byNode[id]
	if !ok {
		return ""
	}

	return kt.entries[idx].Name
}

// Lookup returns the entry with the given name.
func (kt KeyTable) Lookup(name string) (KeyEntry, bool) {
	idx, ok := kt.byName[name]
	if !ok {
		return KeyEntry{}, false
	}

	return kt.entries[idx], true
}
