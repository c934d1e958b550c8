// Package vm implements spec.md's stack-based virtual machine: spec.md's
// "hard part (b)" — Knight's coercion rules, ownership-aware value
// manipulation, and block invocation semantics, dispatched over the
// bytecode the emitter produces.
package vm

import (
	"context"

	"github.com/der-teufel-programming/zknight/internal/bytecode"
	"github.com/der-teufel-programming/zknight/internal/logio"
	"github.com/der-teufel-programming/zknight/internal/value"
)

// Rand is the uniform integer source queried by the Random instruction.
// An interface, rather than a concrete *rand.Rand, so tests can inject
// a deterministic sequence.
type Rand interface{ Int63() int64 }

// LineReader is the input collaborator queried by Prompt, matching the
// teacher's rune-reading idiom (internal/runeio.Reader, internal/
// fileinput.Input) rather than a byte-oriented scanner.
type LineReader interface {
	ReadRune() (r rune, size int, err error)
}

// Output is the output collaborator written to by Output and Dump.
type Output interface {
	Write(p []byte) (int, error)
	Flush() error
}

// Machine executes a bytecode.Program against a value stack, a flat
// variables array, and the program's constants/blocks tables.
type Machine struct {
	prog *bytecode.Program

	code []bytecode.Instr
	pc   int
	ctx  context.Context

	stack []value.Value
	vars  []value.Value

	in   LineReader
	out  Output
	rand Rand

	strict    bool
	stepLimit int
	steps     int

	logf func(mess string, args ...interface{})
	mark *logio.Mark
}

// New constructs a Machine to execute prog.
func New(prog *bytecode.Program, opts ...Option) *Machine {
	m := &Machine{
		prog:   prog,
		vars:   make([]value.Value, prog.NumVariables),
		strict: true,
	}
	for i := range m.vars {
		m.vars[i] = value.Null
	}
	for _, opt := range defaultOptions {
		opt.apply(m)
	}
	for _, opt := range opts {
		opt.apply(m)
	}
	return m
}

func (m *Machine) trace(mess string, args ...interface{}) {
	m.mark.Logf("vm", mess, args...)
}

func (m *Machine) push(v value.Value) { m.stack = append(m.stack, v) }

func (m *Machine) pop() value.Value {
	if len(m.stack) == 0 {
		m.halt(errStackUnderflow)
	}
	i := len(m.stack) - 1
	v := m.stack[i]
	m.stack = m.stack[:i]
	return v
}

func (m *Machine) peek() value.Value {
	if len(m.stack) == 0 {
		m.halt(errStackUnderflow)
	}
	return m.stack[len(m.stack)-1]
}

// Result is the outcome of Run: either the program ran to completion
// (Quit is false) or it hit a QUIT instruction (Quit is true and Code
// holds the clamped exit byte), per spec.md §4.3 Option<u8> contract.
type Result struct {
	Quit bool
	Code byte
}

// Run executes the program from its start until it either runs off the
// end of the code, or a QUIT instruction fires. ctx is checked after
// every instruction, exactly like the teacher's exec/haltif loop, so a
// caller-imposed timeout halts the machine promptly.
func (m *Machine) Run(ctx context.Context) (res Result, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch sig := r.(type) {
		case quitSignal:
			res = Result{Quit: true, Code: sig.code}
		case haltError:
			err = sig.err
		default:
			panic(r)
		}
	}()

	m.ctx = ctx
	m.code = m.prog.Code
	m.pc = 0
	m.runLoop()
	return Result{}, nil
}

func (m *Machine) runLoop() {
	for m.pc < len(m.code) {
		if m.stepLimit > 0 {
			m.steps++
			if m.steps > m.stepLimit {
				m.halt(errStepLimit)
			}
		}
		instr := m.code[m.pc]
		m.trace("%v @%v (stack depth %v)", instr.Op, m.pc, len(m.stack))
		m.dispatch(instr)
		if err := m.ctx.Err(); err != nil {
			m.halt(err)
		}
		m.pc++
	}
}

// quitSignal is the panic value used to unwind every nested CALL frame
// on QUIT, matching spec.md §9's "host-stack recursion" note: CALL
// recurses via runLoop, so this is the only way to short-circuit out
// of arbitrarily many nested frames without manual bubbling.
type quitSignal struct{ code byte }

// haltError is the panic value for abuse-condition and structural
// faults, following the teacher's haltError idiom in core.go.
type haltError struct{ err error }
