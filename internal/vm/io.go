package vm

import (
	"io"

	"github.com/der-teufel-programming/zknight/internal/value"
)

// execPrompt implements spec.md §4.3.1 Prompt: read one line from the
// input collaborator rune by rune, following the teacher's Core.readRune
// idiom, stripping the trailing newline and then every trailing
// carriage return (a line can carry more than one, e.g. "foo\r\r\r\n"),
// so CRLF and repeated-CR line endings all normalize to the same
// String. EOF with nothing read yields Null.
func (m *Machine) execPrompt() {
	if m.in == nil {
		m.halt(errNoInput)
		return
	}
	var line []byte
	for {
		r, _, err := m.in.ReadRune()
		if err != nil {
			if err == io.EOF {
				if len(line) == 0 {
					m.push(value.Null)
					return
				}
				break
			}
			m.halt(err)
			return
		}
		if r == '\n' {
			break
		}
		line = append(line, string(r)...)
	}
	line = trimTrailingCR(line)
	m.push(value.String(line))
}

func trimTrailingCR(s []byte) []byte {
	n := len(s)
	for n > 0 && s[n-1] == '\r' {
		n--
	}
	return s[:n]
}

// execRandom implements Random: draw one non-negative integer from the
// configured source.
func (m *Machine) execRandom() {
	if m.rand == nil {
		m.push(value.Number(0))
		return
	}
	m.push(value.Number(m.rand.Int63()))
}

// execOutput implements Output: write toString(v) followed by a
// newline, unless v's string form ends in a backslash, in which case
// the backslash is stripped and no newline is written. Output returns
// its argument, per spec.md §4.3.1.
func (m *Machine) execOutput() {
	v := m.pop()
	if m.out == nil {
		m.halt(errNoOutput)
		return
	}
	text := v.ToString()
	if n := len(text); n > 0 && text[n-1] == '\\' {
		if _, err := m.out.Write(text[:n-1]); err != nil {
			m.halt(err)
			return
		}
	} else {
		text = append(text, '\n')
		if _, err := m.out.Write(text); err != nil {
			m.halt(err)
			return
		}
	}
	if err := m.out.Flush(); err != nil {
		m.halt(err)
		return
	}
	m.push(v)
}

// execDump implements Dump: write v's canonical debug form and return
// v unchanged.
func (m *Machine) execDump() {
	v := m.pop()
	if m.out == nil {
		m.halt(errNoOutput)
		return
	}
	if err := v.Dump(m.out); err != nil {
		m.halt(err)
		return
	}
	if err := m.out.Flush(); err != nil {
		m.halt(err)
		return
	}
	m.push(v)
}

// execQuit implements Quit: clamp toNumber(v) into a byte and unwind
// every nested CALL frame via quitSignal.
func (m *Machine) execQuit() {
	v := m.pop()
	code := ((v.ToNumber() % 256) + 256) % 256
	panic(quitSignal{code: byte(code)})
}

// execCall implements Call: invoke a Block's deferred body by
// recursing runLoop over its code, then letting the block's own result
// remain on top of the shared stack as CALL's result.
func (m *Machine) execCall() {
	v := m.pop()
	if v.Kind() != value.KindBlock {
		m.halt(value.NewTypeError(value.ErrBlockNotAllowed, "Call", v.Kind()))
		return
	}
	idx := v.BlockIndex()
	if idx < 0 || idx >= len(m.prog.Blocks) {
		m.halt(errBadCall)
		return
	}
	savedCode, savedPC := m.code, m.pc
	m.code = m.prog.Blocks[idx]
	m.pc = 0
	m.runLoop()
	m.code, m.pc = savedCode, savedPC
}
