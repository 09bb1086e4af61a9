package luna

import "fmt"

// Kind identifies the active variant of a Value.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindTable
	KindError
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindTable:
		return "table"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Key is an immutable table key. Keys come in two domains, string and
// number, and the domains never collide: StringKey("3") != NumberKey(3).
// Key is comparable and safe to use as a Go map key; Go's map hashing over
// the struct is consistent with == and therefore kind-sensitive.
type Key struct {
	kind Kind
	s    string
	n    float64
}

// StringKey returns a string-domain key.
func StringKey(s string) Key {
	return Key{kind: KindString, s: s}
}

// NumberKey returns a number-domain key.
func NumberKey(n float64) Key {
	return Key{kind: KindNumber, n: n}
}

// Kind reports the key's domain: KindString or KindNumber.
func (k Key) Kind() Kind { return k.kind }

// Text returns the string payload. Meaningful only for string keys.
func (k Key) Text() string { return k.s }

// Number returns the numeric payload. Meaningful only for number keys.
func (k Key) Number() float64 { return k.n }

// String returns a display form of the key: the bare text for string
// keys, the numeric text for number keys.
func (k Key) String() string {
	if k.kind == KindString {
		return k.s
	}
	return formatNumber(k.n)
}

// Value is the closed tagged union for all convertible Lua values.
// Exactly one variant is active, selected by Kind. The zero Value is Nil.
//
// Values are immutable once built, with one exception: a table Value may
// be populated through Set/SetField/SetIndex while the host is
// constructing it. Values pulled from the engine are always fresh copies
// and never alias engine-side data, so converted structures are trees and
// cannot contain cycles.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string // string payload, or the diagnostic for KindError
	t    map[Key]Value
}

// Nil returns the nil value.
func Nil() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a number value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Table returns a table value wrapping m. A nil map is replaced with an
// empty one.
func Table(m map[Key]Value) Value {
	if m == nil {
		m = make(map[Key]Value)
	}
	return Value{kind: KindTable, t: m}
}

// NewTable returns an empty table value.
func NewTable() Value {
	return Value{kind: KindTable, t: make(map[Key]Value)}
}

// Errorf returns an error value carrying a diagnostic message. Error
// values are produced by the bridge when an engine value cannot be
// converted; they are host-side only and have no engine representation.
func Errorf(format string, args ...any) Value {
	return Value{kind: KindError, s: fmt.Sprintf(format, args...)}
}

// Kind reports the active variant.
func (v Value) Kind() Kind { return v.kind }

// IsNil reports whether the value is nil.
func (v Value) IsNil() bool { return v.kind == KindNil }

// Bool returns the boolean payload. Meaningful only for KindBool.
func (v Value) Bool() bool { return v.b }

// Number returns the numeric payload. Meaningful only for KindNumber.
func (v Value) Number() float64 { return v.n }

// Text returns the string payload. Meaningful only for KindString.
func (v Value) Text() string {
	if v.kind == KindString {
		return v.s
	}
	return ""
}

// Message returns the diagnostic text of an error value, or "" for any
// other kind.
func (v Value) Message() string {
	if v.kind == KindError {
		return v.s
	}
	return ""
}

// Table returns the underlying key/value map, or nil if the value is not
// a table. The map is shared, not copied.
func (v Value) Table() map[Key]Value { return v.t }

// Len returns the number of entries in a table value, 0 otherwise.
func (v Value) Len() int { return len(v.t) }

// Set stores elem under k. It is a no-op on non-table values.
func (v Value) Set(k Key, elem Value) {
	if v.kind == KindTable {
		v.t[k] = elem
	}
}

// SetField stores elem under the string key name.
func (v Value) SetField(name string, elem Value) {
	v.Set(StringKey(name), elem)
}

// SetIndex stores elem under the number key n.
func (v Value) SetIndex(n float64, elem Value) {
	v.Set(NumberKey(n), elem)
}

// Field looks up the string key name in a table value. The second result
// is false if the value is not a table or the key is absent; a found nil
// entry cannot occur since nil-valued assignments are not representable
// in a Lua table.
func (v Value) Field(name string) (Value, bool) {
	return v.lookup(StringKey(name))
}

// Index looks up the number key n in a table value.
func (v Value) Index(n float64) (Value, bool) {
	return v.lookup(NumberKey(n))
}

// At looks up the integer key i, converted into the number key domain.
func (v Value) At(i int) (Value, bool) {
	return v.lookup(NumberKey(float64(i)))
}

func (v Value) lookup(k Key) (Value, bool) {
	if v.kind != KindTable {
		return Value{}, false
	}
	elem, ok := v.t[k]
	return elem, ok
}

// Equal reports deep structural equality of two values. Table comparison
// is unordered: both tables must hold the same key set with equal values.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString, KindError:
		return a.s == b.s
	case KindTable:
		if len(a.t) != len(b.t) {
			return false
		}
		for k, av := range a.t {
			bv, ok := b.t[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
