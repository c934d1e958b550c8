package value

import "bytes"

// Ordering is the result of comparing two Values.
type Ordering int

const (
	Less Ordering = -1
	Equal Ordering = 0
	Greater Ordering = 1
)

// Order implements spec.md §4.3.3 order(a,b): dispatch is on the type
// of the left operand, coercing the right operand to match.
func (a Value) Order(b Value) Ordering {
	switch a.kind {
	case KindNumber:
		return cmpInt64(a.num, b.ToNumber())
	case KindBool:
		return cmpInt64(boolToInt(a.b), boolToInt(b.ToBool()))
	case KindString:
		return cmpBytes(a.str, b.ToString())
	case KindList:
		return orderLists(a.list, b.ToList())
	case KindNull:
		if b.kind == KindNull {
			return Equal
		}
		return Less
	case KindBlock:
		return Equal
	default:
		return Equal
	}
}

func orderLists(a, b []Value) Ordering {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if ord := a[i].Order(b[i]); ord != Equal {
			return ord
		}
	}
	return cmpInt64(int64(len(a)), int64(len(b)))
}

func cmpInt64(a, b int64) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

func cmpBytes(a, b []byte) Ordering {
	switch bytes.Compare(a, b) {
	case -1:
		return Less
	case 1:
		return Greater
	default:
		return Equal
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// StrictEqual implements spec.md §4.3.3 strict_equals(a,b): true only
// when a and b share the same variant and their payloads are equal,
// with no coercion.
func (a Value) StrictEqual(b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.num == b.num
	case KindString:
		return bytes.Equal(a.str, b.str)
	case KindBlock:
		return a.blk == b.blk
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !a.list[i].StrictEqual(b.list[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
