package vm

import (
	"fmt"

	"github.com/der-teufel-programming/zknight/internal/bytecode"
	"github.com/der-teufel-programming/zknight/internal/value"
)

// dispatch executes one instruction against the stack/variables, per
// spec.md §4.3.1's instruction semantics summary.
func (m *Machine) dispatch(instr bytecode.Instr) {
	switch instr.Op {
	case bytecode.Nop:
		// no-op

	case bytecode.True:
		m.push(value.True)
	case bytecode.False:
		m.push(value.False)
	case bytecode.Null:
		m.push(value.Null)
	case bytecode.EmptyList:
		m.push(value.List(nil))

	case bytecode.Constant:
		m.push(m.prog.Constants[instr.Arg].Clone())
	case bytecode.Block:
		m.push(value.BlockRef(instr.Arg))

	case bytecode.LoadVariable:
		m.push(m.vars[instr.Arg].Clone())
	case bytecode.StoreVariable:
		v := m.peek()
		m.vars[instr.Arg] = v.Clone()

	case bytecode.Drop:
		m.pop()
	case bytecode.Dupe:
		m.push(m.peek().Clone())

	case bytecode.Jump:
		m.pc = instr.Arg
	case bytecode.Cond:
		v := m.pop()
		if !v.ToBool() {
			m.pc = instr.Arg
		}

	case bytecode.Not:
		v := m.pop()
		m.push(value.Bool(!v.ToBool()))
	case bytecode.Negate:
		v := m.pop()
		m.push(value.Number(-v.ToNumber()))

	case bytecode.Ascii:
		m.execAscii()
	case bytecode.Box:
		v := m.pop()
		m.push(value.List([]value.Value{v}))
	case bytecode.Head:
		m.execHead()
	case bytecode.Tail:
		m.execTail()
	case bytecode.Length:
		v := m.pop()
		m.push(value.Number(v.Len()))

	case bytecode.Add:
		m.execAdd()
	case bytecode.Sub:
		m.execSub()
	case bytecode.Mult:
		m.execMult()
	case bytecode.Div:
		m.execDiv()
	case bytecode.Mod:
		m.execMod()
	case bytecode.Exp:
		m.execExp()

	case bytecode.Less:
		b, a := m.pop(), m.pop()
		m.push(value.Bool(a.Order(b) == value.Less))
	case bytecode.Greater:
		b, a := m.pop(), m.pop()
		m.push(value.Bool(a.Order(b) == value.Greater))
	case bytecode.Equal:
		b, a := m.pop(), m.pop()
		m.push(value.Bool(a.StrictEqual(b)))

	case bytecode.AndThen:
		b, a := m.pop(), m.pop()
		if a.ToBool() {
			m.push(b)
		} else {
			m.push(a)
		}
	case bytecode.OrThen:
		b, a := m.pop(), m.pop()
		if a.ToBool() {
			m.push(a)
		} else {
			m.push(b)
		}

	case bytecode.Get:
		m.execGet()
	case bytecode.Set:
		m.execSet()

	case bytecode.Prompt:
		m.execPrompt()
	case bytecode.Random:
		m.execRandom()
	case bytecode.Output:
		m.execOutput()
	case bytecode.Dump:
		m.execDump()
	case bytecode.Quit:
		m.execQuit()
	case bytecode.Call:
		m.execCall()

	case bytecode.Invalid:
		m.execInvalid()

	default:
		m.halt(fmt.Errorf("unknown opcode %v", instr.Op))
	}
}

// execInvalid implements spec.md §9's Open Question about `O` applied
// to a bare identifier: an error under strict mode, a no-op otherwise.
func (m *Machine) execInvalid() {
	if m.strict {
		m.halt(value.NewTypeError(value.ErrBlockNotAllowed, "Invalid"))
	}
}
