package typemap

import (
	"github.com/ecumene/rust-swig/types"
)

// NodeIdx is a stable index into the TypeMap's node table.
type NodeIdx int

// InvalidNode is the zero handle target.
const InvalidNode NodeIdx = -1

// typeNode is one registered type. The table owns these records; code
// outside the package only ever sees TypeHandle values.
type typeNode struct {
	idx        NodeIdx
	key        types.NodeKey
	expr       types.TypeExpr
	implements map[string]struct{}
}

func newTypeNode(idx NodeIdx, key types.NodeKey, expr types.TypeExpr) *typeNode {
	return &typeNode{
		idx:        idx,
		key:        key,
		expr:       expr,
		implements: make(map[string]struct{}),
	}
}

func (n *typeNode) addCapability(tag string) {
	n.implements[tag] = struct{}{}
}

func (n *typeNode) hasCapability(tag string) bool {
	_, ok := n.implements[tag]
	return ok
}

// hasAllCapabilities is the subset test generic-rule constraints use.
func (n *typeNode) hasAllCapabilities(tags []string) bool {
	for _, tag := range tags {
		if !n.hasCapability(tag) {
			return false
		}
	}
	return true
}

// display is the human-facing spelling: disambiguator stripped.
func (n *typeNode) display() string {
	return n.key.Display()
}

// TypeHandle is how registered types travel outside the TypeMap: a plain
// index plus a denormalized copy of the display name for logging. Never a
// pointer into the table.
type TypeHandle struct {
	Idx  NodeIdx
	Name string
}

// Valid reports whether the handle points at a registered node.
func (h TypeHandle) Valid() bool {
	return h.Idx != InvalidNode
}

func (h TypeHandle) String() string {
	return h.Name
}

func handleOf(n *typeNode) TypeHandle {
	return TypeHandle{Idx: n.idx, Name: n.display()}
}
