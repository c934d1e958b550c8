// Package ast defines the flat AST shape produced by the parser and
// consumed by the analyzer and emitter: parallel arrays of node kinds
// and per-node data, indirected through a shared source string and a
// shared child-index arena, rather than a tree of pointer-linked
// nodes. Node 0 is always the root (the program's single top-level
// expression).
package ast

import "github.com/der-teufel-programming/zknight/internal/token"

// Kind names a node's syntactic category.
type Kind int

const (
	Invalid Kind = iota
	IntLiteral
	StringLiteral
	Ident
	Call // function application; Func names which function
)

// NodeIndex indexes into a Tree's Nodes slice.
type NodeIndex uint32

// Node is one AST node. Depending on Kind, either [Start,End) (a byte
// range into the Tree's Source) or [ChildStart, ChildStart+ChildCount)
// (a range into the Tree's Children arena) is meaningful — never both.
type Node struct {
	Kind Kind
	Func token.Func // valid only when Kind == Call

	Start, End int // valid for IntLiteral, StringLiteral, Ident

	ChildStart uint32 // valid for Call
	ChildCount uint32
}

// Tree is the flat, arena-indirected AST for one parsed program.
type Tree struct {
	Source   string
	Nodes    []Node
	Children []NodeIndex
}

// Text returns the source text underlying a literal or identifier node.
func (t *Tree) Text(n NodeIndex) string {
	node := t.Nodes[n]
	return t.Source[node.Start:node.End]
}

// ArgAt returns the i'th child of a Call node.
func (t *Tree) ArgAt(n NodeIndex, i int) NodeIndex {
	node := t.Nodes[n]
	return t.Children[int(node.ChildStart)+i]
}

// Args returns every child of a Call node, in order.
func (t *Tree) Args(n NodeIndex) []NodeIndex {
	node := t.Nodes[n]
	return t.Children[node.ChildStart : node.ChildStart+node.ChildCount]
}

// Root returns the index of the program's top-level expression.
func (t *Tree) Root() NodeIndex { return 0 }
