package vm

import "github.com/der-teufel-programming/zknight/internal/value"

// execAdd implements spec.md §4.3.2 Add: dispatch on the left operand's
// type. Number adds, String concatenates, List concatenates; any other
// left type is a BadAdd fault in strict mode, or falls back to numeric
// addition in lenient mode.
func (m *Machine) execAdd() {
	b, a := m.pop(), m.pop()
	switch a.Kind() {
	case value.KindNumber:
		m.push(value.Number(a.Num() + b.ToNumber()))
	case value.KindString:
		buf := append(append([]byte(nil), a.Bytes()...), b.ToString()...)
		m.push(value.String(buf))
	case value.KindList:
		items := append(a.ToList(), b.ToList()...)
		m.push(value.List(items))
	default:
		if m.strict {
			m.halt(value.NewTypeError(value.ErrBadAdd, "Add", a.Kind()))
			return
		}
		m.push(value.Number(a.ToNumber() + b.ToNumber()))
	}
}

// execSub implements Sub: toNumber(a) − toNumber(b). Strict mode
// requires a to already be a Number; lenient mode coerces regardless.
func (m *Machine) execSub() {
	b, a := m.pop(), m.pop()
	if m.strict && a.Kind() != value.KindNumber {
		m.halt(value.NewTypeError(value.ErrBadSub, "Sub", a.Kind()))
		return
	}
	m.push(value.Number(a.ToNumber() - b.ToNumber()))
}

// execMult implements Mult: Number multiplies, String and List repeat
// toNumber(b) times.
func (m *Machine) execMult() {
	b, a := m.pop(), m.pop()
	switch a.Kind() {
	case value.KindNumber:
		m.push(value.Number(a.Num() * b.ToNumber()))
	case value.KindString:
		m.push(value.String(repeatBytes(a.Bytes(), b.ToNumber())))
	case value.KindList:
		m.push(value.List(repeatItems(a.Items(), b.ToNumber())))
	default:
		if m.strict {
			m.halt(value.NewTypeError(value.ErrBadMult, "Mult", a.Kind()))
			return
		}
		m.push(value.Number(a.ToNumber() * b.ToNumber()))
	}
}

func repeatBytes(s []byte, n int64) []byte {
	if n <= 0 {
		return nil
	}
	out := make([]byte, 0, int64(len(s))*n)
	for i := int64(0); i < n; i++ {
		out = append(out, s...)
	}
	return out
}

func repeatItems(items []value.Value, n int64) []value.Value {
	if n <= 0 {
		return nil
	}
	out := make([]value.Value, 0, int64(len(items))*n)
	for i := int64(0); i < n; i++ {
		for _, it := range items {
			out = append(out, it.Clone())
		}
	}
	return out
}

// execDiv implements Div: truncated integer division. Division by zero
// is a structural fault in both modes.
func (m *Machine) execDiv() {
	b, a := m.pop(), m.pop()
	if m.strict && a.Kind() != value.KindNumber {
		m.halt(value.NewTypeError(value.ErrBadDiv, "Div", a.Kind()))
		return
	}
	divisor := b.ToNumber()
	if divisor == 0 {
		m.halt(value.NewTypeError(value.ErrDivByZero, "Div"))
		return
	}
	m.push(value.Number(a.ToNumber() / divisor))
}

// execMod implements Mod: both operands must be non-negative, and the
// divisor must be non-zero; violations are structural faults in both
// modes, per spec.md §4.3.2.
func (m *Machine) execMod() {
	b, a := m.pop(), m.pop()
	if m.strict && a.Kind() != value.KindNumber {
		m.halt(value.NewTypeError(value.ErrBadMod, "Mod", a.Kind()))
		return
	}
	x, y := a.ToNumber(), b.ToNumber()
	if y == 0 {
		m.halt(value.NewTypeError(value.ErrDivByZero, "Mod"))
		return
	}
	if x < 0 || y < 0 {
		m.halt(value.NewTypeError(value.ErrModDomain, "Mod"))
		return
	}
	m.push(value.Number(x % y))
}

// execExp implements Exp: Number raises to a non-negative integer
// power (overflow saturates to 0, an implementer's choice spec.md
// leaves open); List joins its elements on toString(b).
func (m *Machine) execExp() {
	b, a := m.pop(), m.pop()
	switch a.Kind() {
	case value.KindNumber:
		m.push(value.Number(intPow(a.Num(), b.ToNumber())))
	case value.KindList:
		m.push(value.String(joinList(a.Items(), b.ToString())))
	default:
		if m.strict {
			m.halt(value.NewTypeError(value.ErrBadExp, "Exp", a.Kind()))
			return
		}
		m.push(value.Number(intPow(a.ToNumber(), b.ToNumber())))
	}
}

// intPow computes base**exp over int64, saturating to 0 on overflow or
// on a negative exponent rather than failing the whole program.
func intPow(base, exp int64) int64 {
	if exp < 0 {
		return 0
	}
	result := int64(1)
	for ; exp > 0; exp-- {
		next := result * base
		if base != 0 && next/base != result {
			return 0
		}
		result = next
	}
	return result
}

func joinList(items []value.Value, sep []byte) []byte {
	var out []byte
	for i, it := range items {
		if i > 0 {
			out = append(out, sep...)
		}
		out = append(out, it.ToString()...)
	}
	return out
}
