// Package emitter lowers a parsed, analyzed Knight program into linear
// bytecode: spec.md's "hard part (a)" — constant interning, nested
// BLOCK compilation, and jump patching for short-circuit booleans,
// conditionals, and while-loops.
//
// Jump/Cond convention (spec.md §4.2.2): the VM's dispatch loop
// increments the program counter after every instruction, including
// ones that overwrote it. So every patched target here is recorded as
// (desired landing index − 1); this file applies that rule uniformly
// to every construct below, which is one of the two conventions
// spec.md explicitly permits (§9 Open Questions; see DESIGN.md).
package emitter

import (
	"bytes"
	"strconv"

	"github.com/der-teufel-programming/zknight/internal/analyzer"
	"github.com/der-teufel-programming/zknight/internal/ast"
	"github.com/der-teufel-programming/zknight/internal/bytecode"
	"github.com/der-teufel-programming/zknight/internal/logio"
	"github.com/der-teufel-programming/zknight/internal/token"
	"github.com/der-teufel-programming/zknight/internal/value"
)

// Emitter lowers one Tree into a Program, interning constants and
// nested block bodies as it goes.
type Emitter struct {
	tree *ast.Tree
	info analyzer.Info

	code       []bytecode.Instr
	constants  []value.Value
	constIndex map[string]int
	blocks     [][]bytecode.Instr

	logf func(mess string, args ...interface{})
	mark *logio.Mark
}

// Emit lowers tree (with identifier slots from info) into a Program.
func Emit(tree *ast.Tree, info analyzer.Info, opts ...Option) (*bytecode.Program, error) {
	e := &Emitter{tree: tree, info: info}
	for _, opt := range opts {
		opt.apply(e)
	}
	if err := e.emitExpr(tree.Root()); err != nil {
		return nil, err
	}
	return &bytecode.Program{
		Code:         e.code,
		Blocks:       e.blocks,
		Constants:    e.constants,
		NumVariables: info.Count,
	}, nil
}

func (e *Emitter) trace(mess string, args ...interface{}) {
	e.mark.Logf("emit", mess, args...)
}

func (e *Emitter) emit(op bytecode.Op) int {
	e.code = append(e.code, bytecode.Instr{Op: op})
	e.trace("%v @%v", op, len(e.code)-1)
	return len(e.code) - 1
}

func (e *Emitter) emitArg(op bytecode.Op, arg int) int {
	e.code = append(e.code, bytecode.Instr{Op: op, Arg: arg})
	e.trace("%v %v @%v", op, arg, len(e.code)-1)
	return len(e.code) - 1
}

func (e *Emitter) patch(at int, arg int) {
	e.code[at].Arg = arg
}

// here returns the index the next-emitted instruction will occupy.
func (e *Emitter) here() int { return len(e.code) }

func (e *Emitter) emitExpr(n ast.NodeIndex) error {
	node := e.tree.Nodes[n]
	switch node.Kind {
	case ast.IntLiteral:
		return e.emitIntLiteral(n)
	case ast.StringLiteral:
		e.emitStringLiteral(n)
		return nil
	case ast.Ident:
		return e.emitLoad(n)
	case ast.Call:
		return e.emitCall(n)
	default:
		return &EmitError{Kind: ErrInvalidStoreDestination, Text: "malformed node"}
	}
}

func (e *Emitter) emitIntLiteral(n ast.NodeIndex) error {
	text := e.tree.Text(n)
	num, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return &EmitError{Kind: ErrOverflow, Text: text}
	}
	idx := e.intern(value.Number(num))
	e.emitArg(bytecode.Constant, idx)
	return nil
}

func (e *Emitter) emitStringLiteral(n ast.NodeIndex) {
	text := e.tree.Text(n)
	idx := e.intern(value.StringFromText(text))
	e.emitArg(bytecode.Constant, idx)
}

// intern dedupes v against every constant already in this emitter's
// pool, keyed by its canonical Dump form, adapted from the teacher's
// symbols dictionary (root symbols.go's symbolicate): first occurrence
// wins a fresh index, every later occurrence reuses it.
func (e *Emitter) intern(v value.Value) int {
	var buf bytes.Buffer
	v.Dump(&buf)
	key := buf.String()
	if idx, ok := e.constIndex[key]; ok {
		return idx
	}
	if e.constIndex == nil {
		e.constIndex = make(map[string]int)
	}
	idx := len(e.constants)
	e.constants = append(e.constants, v)
	e.constIndex[key] = idx
	return idx
}

func (e *Emitter) emitLoad(n ast.NodeIndex) error {
	name := e.tree.Text(n)
	slot, ok := e.info.SlotOf(name)
	if !ok {
		// Every identifier in the tree was visited by the analyzer;
		// an unknown name here indicates the analyzer and emitter were
		// run against different trees.
		slot = 0
	}
	e.emitArg(bytecode.LoadVariable, slot)
	return nil
}

var nullaryOps = map[token.Func]bytecode.Op{
	token.FuncTrue:      bytecode.True,
	token.FuncFalse:     bytecode.False,
	token.FuncNull:      bytecode.Null,
	token.FuncEmptyList: bytecode.EmptyList,
	token.FuncPrompt:    bytecode.Prompt,
	token.FuncRandom:    bytecode.Random,
}

var unaryOps = map[token.Func]bytecode.Op{
	token.FuncNot:    bytecode.Not,
	token.FuncNegate: bytecode.Negate,
	token.FuncBox:    bytecode.Box,
	token.FuncHead:   bytecode.Head,
	token.FuncTail:   bytecode.Tail,
	token.FuncAscii:  bytecode.Ascii,
	token.FuncCall:   bytecode.Call,
	token.FuncDump:   bytecode.Dump,
	token.FuncLength: bytecode.Length,
	token.FuncQuit:   bytecode.Quit,
	token.FuncOutput: bytecode.Output,
}

var binaryOps = map[token.Func]bytecode.Op{
	token.FuncAdd:     bytecode.Add,
	token.FuncSub:     bytecode.Sub,
	token.FuncMult:    bytecode.Mult,
	token.FuncDiv:     bytecode.Div,
	token.FuncMod:     bytecode.Mod,
	token.FuncExp:     bytecode.Exp,
	token.FuncLess:    bytecode.Less,
	token.FuncGreater: bytecode.Greater,
	token.FuncEqual:   bytecode.Equal,
}

func (e *Emitter) emitCall(n ast.NodeIndex) error {
	node := e.tree.Nodes[n]
	fn := node.Func
	args := e.tree.Args(n)

	if op, ok := nullaryOps[fn]; ok {
		e.emit(op)
		return nil
	}

	switch fn {
	case token.FuncIdentity:
		return e.emitExpr(args[0])

	case token.FuncBlock:
		return e.emitBlock(args[0])

	case token.FuncOutput:
		if e.tree.Nodes[args[0]].Kind == ast.Ident {
			// spec.md §9 Open Questions: O applied directly to a bare
			// identifier is a source-level oddity of unclear original
			// intent; emit the Invalid marker rather than inventing
			// semantics for it.
			e.emit(bytecode.Invalid)
			return nil
		}
	}

	if op, ok := unaryOps[fn]; ok {
		if err := e.emitExpr(args[0]); err != nil {
			return err
		}
		e.emit(op)
		return nil
	}

	if op, ok := binaryOps[fn]; ok {
		if err := e.emitExpr(args[0]); err != nil {
			return err
		}
		if err := e.emitExpr(args[1]); err != nil {
			return err
		}
		e.emit(op)
		return nil
	}

	switch fn {
	case token.FuncThen:
		return e.emitThen(args)
	case token.FuncAssign:
		return e.emitAssign(args)
	case token.FuncAnd:
		return e.emitAnd(args)
	case token.FuncOr:
		return e.emitOr(args)
	case token.FuncWhile:
		return e.emitWhile(args)
	case token.FuncIf:
		return e.emitIf(args)
	case token.FuncGet:
		return e.emitArgsThen(args, bytecode.Get)
	case token.FuncSet:
		return e.emitArgsThen(args, bytecode.Set)
	default:
		return &EmitError{Kind: ErrInvalidStoreDestination, Text: "unhandled function"}
	}
}

// emitArgsThen emits every argument left-to-right, then op: the shared
// shape of GET and SET per spec.md §4.2.
func (e *Emitter) emitArgsThen(args []ast.NodeIndex, op bytecode.Op) error {
	for _, arg := range args {
		if err := e.emitExpr(arg); err != nil {
			return err
		}
	}
	e.emit(op)
	return nil
}

func (e *Emitter) emitThen(args []ast.NodeIndex) error {
	if err := e.emitExpr(args[0]); err != nil {
		return err
	}
	e.emit(bytecode.Drop)
	return e.emitExpr(args[1])
}

func (e *Emitter) emitAssign(args []ast.NodeIndex) error {
	dst := e.tree.Nodes[args[0]]
	if dst.Kind != ast.Ident {
		return &EmitError{Kind: ErrInvalidStoreDestination}
	}
	if err := e.emitExpr(args[1]); err != nil {
		return err
	}
	slot, ok := e.info.SlotOf(e.tree.Text(args[0]))
	if !ok {
		return &EmitError{Kind: ErrInvalidStoreDestination, Text: e.tree.Text(args[0])}
	}
	e.emitArg(bytecode.StoreVariable, slot)
	return nil
}

// emitAnd implements spec.md §4.2's dupe-cond-drop short-circuit idiom
// for `&`: on falsy arg0, skip past (Drop; arg1) so arg0's duplicate
// remains as the expression's value.
func (e *Emitter) emitAnd(args []ast.NodeIndex) error {
	if err := e.emitExpr(args[0]); err != nil {
		return err
	}
	e.emit(bytecode.Dupe)
	condAt := e.emitArg(bytecode.Cond, 0)
	e.emit(bytecode.Drop)
	if err := e.emitExpr(args[1]); err != nil {
		return err
	}
	e.patch(condAt, e.here()-1)
	return nil
}

// emitOr is emitAnd with an extra Not so the jump fires on truthy arg0.
func (e *Emitter) emitOr(args []ast.NodeIndex) error {
	if err := e.emitExpr(args[0]); err != nil {
		return err
	}
	e.emit(bytecode.Dupe)
	e.emit(bytecode.Not)
	condAt := e.emitArg(bytecode.Cond, 0)
	e.emit(bytecode.Drop)
	if err := e.emitExpr(args[1]); err != nil {
		return err
	}
	e.patch(condAt, e.here()-1)
	return nil
}

func (e *Emitter) emitWhile(args []ast.NodeIndex) error {
	if e.here() == 0 {
		// keep cond_pc - 1 a valid, non-negative patch target
		e.emit(bytecode.Nop)
	}
	condPC := e.here()
	if err := e.emitExpr(args[0]); err != nil {
		return err
	}
	condAt := e.emitArg(bytecode.Cond, 0)
	if err := e.emitExpr(args[1]); err != nil {
		return err
	}
	e.emit(bytecode.Drop)
	e.emitArg(bytecode.Jump, condPC-1)
	e.patch(condAt, e.here()-1)
	e.emit(bytecode.Null)
	return nil
}

func (e *Emitter) emitIf(args []ast.NodeIndex) error {
	if err := e.emitExpr(args[0]); err != nil {
		return err
	}
	j1 := e.emitArg(bytecode.Cond, 0)
	if err := e.emitExpr(args[1]); err != nil {
		return err
	}
	j2 := e.emitArg(bytecode.Jump, 0)
	e.patch(j1, e.here()-1)
	if err := e.emitExpr(args[2]); err != nil {
		return err
	}
	e.patch(j2, e.here()-1)
	return nil
}
