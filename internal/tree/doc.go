// Package tree merges the paths of all fields of a type into one tree of
// nested scopes.
//
// Nodes live in an arena and are addressed by NodeID; the root scope is
// always node 0. Each scope keeps an ordered segment -> child mapping, so
// traversals are deterministic and follow first-seen order.
//
// Build also records the key table: every leaf key (named after its field)
// and every scope key (named after its segment), in first-seen order.
package tree
