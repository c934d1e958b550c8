// Package analyzer assigns a dense 0-based slot to every distinct
// identifier appearing in a parsed Knight program, in order of first
// appearance, so the emitter and VM can address variables by array
// index instead of by name.
package analyzer

import "github.com/der-teufel-programming/zknight/internal/ast"

// Info is the result of walking a Tree: a name-to-slot mapping and the
// total distinct-identifier count.
type Info struct {
	Slots map[string]int
	Count int
}

// SlotOf returns the slot assigned to name, and whether name was seen
// at all.
func (info Info) SlotOf(name string) (int, bool) {
	slot, ok := info.Slots[name]
	return slot, ok
}

// Analyze walks tree and assigns slots. It is deterministic: two trees
// with identical identifier sets and first-occurrence orderings yield
// identical Infos.
func Analyze(tree *ast.Tree) Info {
	info := Info{Slots: make(map[string]int)}
	if len(tree.Nodes) == 0 {
		return info
	}
	walk(tree, tree.Root(), &info)
	return info
}

func walk(tree *ast.Tree, n ast.NodeIndex, info *Info) {
	node := tree.Nodes[n]
	switch node.Kind {
	case ast.Ident:
		name := tree.Text(n)
		if _, seen := info.Slots[name]; !seen {
			info.Slots[name] = info.Count
			info.Count++
		}
	case ast.Call:
		for _, arg := range tree.Args(n) {
			walk(tree, arg, info)
		}
	}
}
