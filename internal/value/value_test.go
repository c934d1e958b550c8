package value

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToNumber(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want int64
	}{
		{"number", Number(42), 42},
		{"null", Null, 0},
		{"true", True, 1},
		{"false", False, 0},
		{"string digits", StringFromText("  -12abc"), -12},
		{"string no digits", StringFromText("abc"), 0},
		{"string empty", StringFromText(""), 0},
		{"list", List([]Value{Number(1), Number(2), Number(3)}), 3},
		{"block", BlockRef(0), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.v.ToNumber())
		})
	}
}

func TestToBool(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"zero", Number(0), false},
		{"nonzero", Number(1), true},
		{"null", Null, false},
		{"true", True, true},
		{"false", False, false},
		{"empty string", StringFromText(""), false},
		{"nonempty string", StringFromText("x"), true},
		{"empty list", List(nil), false},
		{"nonempty list", List([]Value{Null}), true},
		{"block", BlockRef(0), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.v.ToBool())
		})
	}
}

func TestToStringTotal(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"number", Number(-5), "-5"},
		{"null", Null, ""},
		{"true", True, "true"},
		{"false", False, "false"},
		{"string", StringFromText("hi"), "hi"},
		{"list", List([]Value{Number(1), Number(2)}), "1\n2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, string(c.v.ToString()))
		})
	}
}

func TestToListLengthInvariant(t *testing.T) {
	// spec.md §8: toList(v) has length len(v) for String/List, and
	// digit_count(|n|) for non-zero Number.
	s := StringFromText("hello")
	assert.Len(t, s.ToList(), int(s.Len()))

	l := List([]Value{Number(1), Number(2), Number(3)})
	assert.Len(t, l.ToList(), int(l.Len()))

	n := Number(-12345)
	assert.Len(t, n.ToList(), 5)
}

func TestToNumberIdempotentOnNumber(t *testing.T) {
	// toNumber(toString(n)) == n for any Number n, per spec.md §8.
	for _, n := range []int64{0, 1, -1, 42, -999, 1234567} {
		v := Number(n)
		roundTripped := StringFromText(string(v.ToString())).ToNumber()
		assert.Equal(t, n, roundTripped)
	}
}

func TestOrder(t *testing.T) {
	assert.Equal(t, Less, Number(1).Order(Number(2)))
	assert.Equal(t, Greater, Number(2).Order(Number(1)))
	assert.Equal(t, Equal, Number(2).Order(Number(2)))
	assert.Equal(t, Less, StringFromText("abc").Order(StringFromText("abd")))
	assert.Equal(t, Less, List([]Value{Number(1)}).Order(List([]Value{Number(1), Number(2)})))
}

func TestStrictEqualReflexive(t *testing.T) {
	// strict_equals(v, v) for any v not containing a Block inside a
	// List, per spec.md §8.
	vs := []Value{
		Null, True, False, Number(0), Number(-7),
		StringFromText("abc"), StringFromText(""),
		List([]Value{Number(1), StringFromText("x")}),
		BlockRef(3),
	}
	for _, v := range vs {
		assert.True(t, v.StrictEqual(v))
	}
}

func TestStrictEqualNoCoercion(t *testing.T) {
	assert.False(t, Number(1).StrictEqual(True))
	assert.False(t, StringFromText("1").StrictEqual(Number(1)))
	assert.False(t, Null.StrictEqual(False))
}

func TestCloneDeepCopiesStringAndList(t *testing.T) {
	orig := StringFromText("abc")
	clone := orig.Clone()
	clone.Bytes()[0] = 'z'
	assert.Equal(t, byte('a'), orig.Bytes()[0], "clone must not alias original bytes")

	origList := List([]Value{StringFromText("abc")})
	cloneList := origList.Clone()
	cloneList.Items()[0].Bytes()[0] = 'z'
	assert.Equal(t, byte('a'), origList.Items()[0].Bytes()[0], "clone must not alias nested values")
}

func TestDumpCanonicalForms(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"number", Number(-12), "-12"},
		{"bool true", True, "true"},
		{"bool false", False, "false"},
		{"null", Null, "null"},
		{"string escapes", StringFromText("a\tb\nc\\\"d"), `"a\tb\nc\\\"d"`},
		{"list", List([]Value{Number(1), StringFromText("a")}), `[1, "a"]`},
		{"empty list", List(nil), "[]"},
		{"block", BlockRef(0), ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.NoError(t, c.v.Dump(&buf))
			assert.Equal(t, c.want, buf.String())
		})
	}
}

func TestNoSharedBufferOnConcat(t *testing.T) {
	// spec.md §8 scenario 8: two concatenations built from the same
	// empty-string base must not alias each other's backing array.
	empty := StringFromText("")
	a := String(append(append([]byte(nil), empty.Bytes()...), StringFromText("12").ToString()...))
	b := String(append(append([]byte(nil), empty.Bytes()...), StringFromText("34").ToString()...))
	assert.Equal(t, "12", string(a.Bytes()))
	assert.Equal(t, "34", string(b.Bytes()))
}
