package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/der-teufel-programming/zknight/internal/token"
)

func parse(t *testing.T, src string) Tree {
	t.Helper()
	toks := token.NewLexer(src).All()
	tree, err := NewParser(src, toks).Parse()
	require.NoError(t, err)
	return tree
}

func TestParseLiteral(t *testing.T) {
	tree := parse(t, "42")
	root := tree.Nodes[tree.Root()]
	assert.Equal(t, IntLiteral, root.Kind)
	assert.Equal(t, "42", tree.Text(tree.Root()))
}

func TestParseRootIsFirstCall(t *testing.T) {
	// The program's top-level expression must land at NodeIndex 0, even
	// when it is a function call whose arguments allocate more nodes.
	tree := parse(t, "+ 1 2")
	root := tree.Nodes[tree.Root()]
	assert.Equal(t, Call, root.Kind)
	assert.Equal(t, token.FuncAdd, root.Func)
	assert.Len(t, tree.Args(tree.Root()), 2)
}

func TestParseArityDriven(t *testing.T) {
	tree := parse(t, "; = a 3 : a")
	root := tree.Nodes[tree.Root()]
	assert.Equal(t, token.FuncThen, root.Func)
	args := tree.Args(tree.Root())
	assert.Len(t, args, 2)
	assign := tree.Nodes[args[0]]
	assert.Equal(t, token.FuncAssign, assign.Func)
}

func TestParseParensAreIgnored(t *testing.T) {
	tree := parse(t, "(+ 1 2)")
	root := tree.Nodes[tree.Root()]
	assert.Equal(t, Call, root.Kind)
	assert.Equal(t, token.FuncAdd, root.Func)
}

func TestParseTrailingTokenIsError(t *testing.T) {
	toks := token.NewLexer("1 2").All()
	_, err := NewParser("1 2", toks).Parse()
	assert.Error(t, err)
}

func TestParseMissingArgumentIsError(t *testing.T) {
	toks := token.NewLexer("+ 1").All()
	_, err := NewParser("+ 1", toks).Parse()
	assert.Error(t, err)
}

func TestParseUnmatchedParenIsError(t *testing.T) {
	toks := token.NewLexer("(1").All()
	_, err := NewParser("(1", toks).Parse()
	assert.Error(t, err)
}

func TestParseNestedBlockBody(t *testing.T) {
	tree := parse(t, "B + 1 2")
	root := tree.Nodes[tree.Root()]
	assert.Equal(t, token.FuncBlock, root.Func)
	args := tree.Args(tree.Root())
	require.Len(t, args, 1)
	body := tree.Nodes[args[0]]
	assert.Equal(t, token.FuncAdd, body.Func)
}
