// Package bytecode defines the wire format shared between the emitter
// and the VM: the instruction set, and the Program container of code,
// sub-blocks, and interned constants.
package bytecode

import "github.com/der-teufel-programming/zknight/internal/value"

// Op identifies one VM instruction.
type Op int

const (
	Nop Op = iota

	// nullary
	True
	False
	Null
	EmptyList
	Prompt
	Random
	Call
	Quit
	Dump
	Output
	Length
	Not
	Negate
	Ascii
	Box
	Head
	Tail
	Add
	Sub
	Mult
	Div
	Mod
	Exp
	Less
	Greater
	Equal
	AndThen
	OrThen
	Drop
	Dupe
	Get
	Set
	Invalid

	// carry an index payload in Instr.Arg
	Jump
	Cond
	LoadVariable
	StoreVariable
	Block
	Constant
)

var names = map[Op]string{
	Nop: "nop", True: "true", False: "false", Null: "null", EmptyList: "emptylist",
	Prompt: "prompt", Random: "random", Call: "call", Quit: "quit", Dump: "dump",
	Output: "output", Length: "length", Not: "not", Negate: "negate", Ascii: "ascii",
	Box: "box", Head: "head", Tail: "tail", Add: "add", Sub: "sub", Mult: "mult",
	Div: "div", Mod: "mod", Exp: "exp", Less: "less", Greater: "greater", Equal: "equal",
	AndThen: "andthen", OrThen: "orthen", Drop: "drop", Dupe: "dupe", Get: "get",
	Set: "set", Invalid: "invalid", Jump: "jump", Cond: "cond",
	LoadVariable: "loadvar", StoreVariable: "storevar", Block: "block", Constant: "const",
}

func (op Op) String() string {
	if s, ok := names[op]; ok {
		return s
	}
	return "unknown"
}

// HasArg reports whether op carries an index payload.
func (op Op) HasArg() bool {
	switch op {
	case Jump, Cond, LoadVariable, StoreVariable, Block, Constant:
		return true
	default:
		return false
	}
}

// Instr is one bytecode instruction: an Op, plus an index payload
// meaningful only when Op.HasArg() is true.
type Instr struct {
	Op  Op
	Arg int
}

// Program is the output of the emitter and the input to the VM.
type Program struct {
	Code         []Instr
	Blocks       [][]Instr
	Constants    []value.Value
	NumVariables int
}
