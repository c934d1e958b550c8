package vm

import "github.com/der-teufel-programming/zknight/internal/value"

// execAscii implements spec.md §4.3.1 Ascii: Number to single-char
// String, String's first byte to Number.
func (m *Machine) execAscii() {
	v := m.pop()
	switch v.Kind() {
	case value.KindNumber:
		code := ((v.Num() % 256) + 256) % 256
		m.push(value.String([]byte{byte(code)}))
	case value.KindString:
		if len(v.Bytes()) == 0 {
			m.badAscii(v)
			return
		}
		m.push(value.Number(int64(v.Bytes()[0])))
	default:
		m.badAscii(v)
	}
}

func (m *Machine) badAscii(v value.Value) {
	if m.strict {
		m.halt(value.NewTypeError(value.ErrBadAscii, "Ascii", v.Kind()))
		return
	}
	m.push(value.Null)
}

// execHead implements Head: first element/char, or a BadHead fault
// (strict) / Null (lenient) on an empty or wrongly-typed operand.
func (m *Machine) execHead() {
	v := m.pop()
	switch v.Kind() {
	case value.KindString:
		if len(v.Bytes()) == 0 {
			m.badHead(v)
			return
		}
		m.push(value.String(v.Bytes()[:1]))
	case value.KindList:
		if len(v.Items()) == 0 {
			m.badHead(v)
			return
		}
		m.push(v.Items()[0].Clone())
	default:
		m.badHead(v)
	}
}

func (m *Machine) badHead(v value.Value) {
	if m.strict {
		m.halt(value.NewTypeError(value.ErrBadHead, "Head", v.Kind()))
		return
	}
	m.push(value.Null)
}

// execTail implements Tail: every element/char but the first.
func (m *Machine) execTail() {
	v := m.pop()
	switch v.Kind() {
	case value.KindString:
		if len(v.Bytes()) == 0 {
			m.badTail(v)
			return
		}
		m.push(value.String(v.Bytes()[1:]))
	case value.KindList:
		if len(v.Items()) == 0 {
			m.badTail(v)
			return
		}
		rest := v.Items()[1:]
		items := make([]value.Value, len(rest))
		for i, it := range rest {
			items[i] = it.Clone()
		}
		m.push(value.List(items))
	default:
		m.badTail(v)
	}
}

func (m *Machine) badTail(v value.Value) {
	if m.strict {
		m.halt(value.NewTypeError(value.ErrBadTail, "Tail", v.Kind()))
		return
	}
	m.push(value.Null)
}

// execGet implements spec.md §4.3.4 GET: pop length, start, then the
// collection, and push a[start : start+length] as a's own kind.
func (m *Machine) execGet() {
	l, i, a := m.pop(), m.pop(), m.pop()
	start, length := i.ToNumber(), l.ToNumber()
	switch a.Kind() {
	case value.KindString:
		s := a.Bytes()
		if !inRange(start, length, int64(len(s))) {
			m.badGet(a)
			return
		}
		m.push(value.String(s[start : start+length]))
	case value.KindList:
		items := a.Items()
		if !inRange(start, length, int64(len(items))) {
			m.badGet(a)
			return
		}
		sliced := make([]value.Value, length)
		for idx := range sliced {
			sliced[idx] = items[start+int64(idx)].Clone()
		}
		m.push(value.List(sliced))
	default:
		m.badGet(a)
	}
}

func (m *Machine) badGet(a value.Value) {
	m.halt(value.NewTypeError(value.ErrBadGet, "Get", a.Kind()))
}

// execSet implements spec.md §4.3.4 SET: pop the replacement, length,
// start, then the collection, and push a with [start:start+length]
// spliced out and replaced by v coerced to a's kind.
func (m *Machine) execSet() {
	v, l, i, a := m.pop(), m.pop(), m.pop(), m.pop()
	start, length := i.ToNumber(), l.ToNumber()
	switch a.Kind() {
	case value.KindString:
		s := a.Bytes()
		if !inRange(start, length, int64(len(s))) {
			m.badSet(a)
			return
		}
		out := append(append(append([]byte(nil), s[:start]...), v.ToString()...), s[start+length:]...)
		m.push(value.String(out))
	case value.KindList:
		items := a.Items()
		if !inRange(start, length, int64(len(items))) {
			m.badSet(a)
			return
		}
		var out []value.Value
		for _, it := range items[:start] {
			out = append(out, it.Clone())
		}
		out = append(out, v.ToList()...)
		for _, it := range items[start+length:] {
			out = append(out, it.Clone())
		}
		m.push(value.List(out))
	default:
		m.badSet(a)
	}
}

func (m *Machine) badSet(a value.Value) {
	m.halt(value.NewTypeError(value.ErrBadSet, "Set", a.Kind()))
}

func inRange(start, length, total int64) bool {
	return start >= 0 && length >= 0 && start+length <= total
}
