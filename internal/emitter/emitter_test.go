package emitter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/der-teufel-programming/zknight/internal/analyzer"
	"github.com/der-teufel-programming/zknight/internal/ast"
	"github.com/der-teufel-programming/zknight/internal/bytecode"
	"github.com/der-teufel-programming/zknight/internal/token"
	"github.com/der-teufel-programming/zknight/internal/vm"
)

// testWriteFlusher adapts a strings.Builder to vm.Output for tests
// that only need to observe written bytes, not real buffering.
type testWriteFlusher struct{ w *strings.Builder }

func (tw testWriteFlusher) Write(p []byte) (int, error) { return tw.w.Write(p) }
func (tw testWriteFlusher) Flush() error                { return nil }

func emitSource(t *testing.T, src string) *bytecode.Program {
	t.Helper()
	toks := token.NewLexer(src).All()
	tree, err := ast.NewParser(src, toks).Parse()
	require.NoError(t, err)
	info := analyzer.Analyze(&tree)
	prog, err := Emit(&tree, info)
	require.NoError(t, err)
	return prog
}

func ops(code []bytecode.Instr) []bytecode.Op {
	out := make([]bytecode.Op, len(code))
	for i, instr := range code {
		out[i] = instr.Op
	}
	return out
}

func TestEmitAndShortCircuitShape(t *testing.T) {
	prog := emitSource(t, "& 1 2")
	require.Len(t, prog.Code, 5)
	assert.Equal(t, []bytecode.Op{
		bytecode.Constant, bytecode.Dupe, bytecode.Cond, bytecode.Drop, bytecode.Constant,
	}, ops(prog.Code))
	// Cond targets the last instruction index under the
	// landing-index-minus-one patch convention: runLoop's pc++ then
	// moves past the final Constant, leaving arg0's duplicate as the
	// expression's value.
	assert.Equal(t, 4, prog.Code[2].Arg)
}

func TestEmitOrShortCircuitShape(t *testing.T) {
	prog := emitSource(t, "| 1 2")
	require.Len(t, prog.Code, 6)
	assert.Equal(t, []bytecode.Op{
		bytecode.Constant, bytecode.Dupe, bytecode.Not, bytecode.Cond, bytecode.Drop, bytecode.Constant,
	}, ops(prog.Code))
	assert.Equal(t, 5, prog.Code[3].Arg)
}

func TestEmitIfShape(t *testing.T) {
	prog := emitSource(t, "I 1 2 3")
	require.Len(t, prog.Code, 5)
	assert.Equal(t, []bytecode.Op{
		bytecode.Constant, bytecode.Cond, bytecode.Constant, bytecode.Jump, bytecode.Constant,
	}, ops(prog.Code))
	assert.Equal(t, 3, prog.Code[1].Arg, "Cond must land just before the else branch")
	assert.Equal(t, 4, prog.Code[3].Arg, "Jump must land on the final instruction")
}

func TestEmitWhileShape(t *testing.T) {
	prog := emitSource(t, "WHILE 1 2")
	require.Len(t, prog.Code, 7)
	assert.Equal(t, []bytecode.Op{
		bytecode.Nop, bytecode.Constant, bytecode.Cond, bytecode.Constant,
		bytecode.Drop, bytecode.Jump, bytecode.Null,
	}, ops(prog.Code))
	assert.Equal(t, 5, prog.Code[2].Arg, "Cond must skip past the loop body to Null")
	assert.Equal(t, 0, prog.Code[5].Arg, "Jump must land back on the condition")
}

func TestEmitWhileYieldsNull(t *testing.T) {
	prog := emitSource(t, "D WHILE 0 1")
	var out strings.Builder
	m := vm.New(prog, vm.WithOutput(testWriteFlusher{&out}))
	res, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Quit)
	assert.Equal(t, "null", out.String(), "WHILE must yield Null per spec.md §8")
}

func TestEmitIntern(t *testing.T) {
	prog := emitSource(t, "+ 1 1")
	assert.Len(t, prog.Constants, 1, "repeated identical constants must be interned to one slot")
	assert.Equal(t, 0, prog.Code[0].Arg)
	assert.Equal(t, 0, prog.Code[1].Arg)
}

func TestEmitAssignmentIsExpression(t *testing.T) {
	// spec.md §8: after `= x e`, the top of stack equals the stored
	// value. D applied directly to the assignment, with nothing in
	// between to drop the pushed value, dumps exactly what `=` left on
	// the stack.
	prog := emitSource(t, "D = x 5")
	var out strings.Builder
	m := vm.New(prog, vm.WithOutput(testWriteFlusher{&out}))
	res, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Quit)
	assert.Equal(t, "5", out.String())
}

func TestEmitAssignmentThenLoadEqualsStoredValue(t *testing.T) {
	// The second half of the same invariant: x subsequently loads a
	// value equal to what was stored.
	prog := emitSource(t, "D (; = x 5 : x)")
	var out strings.Builder
	m := vm.New(prog, vm.WithOutput(testWriteFlusher{&out}))
	res, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Quit)
	assert.Equal(t, "5", out.String())
}

func TestEmitGlobalBlockScoping(t *testing.T) {
	// spec.md §4.3.4 / §8 scenario 3: a BLOCK captures no environment;
	// CALL resolves identifiers against the current global value, not
	// whatever was live when the block was constructed.
	src := `D (; = a 1 ; = blk BLOCK a ; = a 2 : CALL blk)`
	prog := emitSource(t, src)
	var out strings.Builder
	m := vm.New(prog, vm.WithOutput(testWriteFlusher{&out}))
	res, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Quit)
	assert.Equal(t, "2", out.String(), "CALL must see a's current value, not its value at BLOCK time")
}

func TestEmitInvalidOpcodeForOutputOfBareIdentifier(t *testing.T) {
	// spec.md §9 Open Question: `O` applied directly to a bare
	// identifier emits the Invalid marker rather than Load;Output.
	prog := emitSource(t, "; = x 1 O x")
	found := false
	for _, instr := range prog.Code {
		if instr.Op == bytecode.Invalid {
			found = true
		}
	}
	assert.True(t, found, "O applied to a bare identifier must emit Invalid")
}

func TestEmitDeterministic(t *testing.T) {
	src := "; = a 1 ; = b 2 : + a b"
	p1 := emitSource(t, src)
	p2 := emitSource(t, src)
	assert.Equal(t, ops(p1.Code), ops(p2.Code))
	assert.Equal(t, p1.NumVariables, p2.NumVariables)
}
