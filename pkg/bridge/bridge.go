package bridge

import (
	"errors"
	"fmt"

	"github.com/smallfx/luna/pkg/luna"
)

// ErrCall is wrapped by Call when the protected call reports a runtime
// fault, including the case where the named global is not callable.
var ErrCall = errors.New("bridge: call failed")

// Pull converts the engine value at stack position idx into a Value.
//
// Scalars are read in place. Tables are walked with the engine's cursor
// iteration and copied into a fresh host-side table, recursing into
// nested tables; string- and number-tagged keys map into the matching key
// domains, and entries under any other key tag are skipped. A slot whose
// tag is outside the convertible set yields an error value carrying a
// diagnostic; Pull never panics and always returns a value.
//
// Pull leaves the stack balanced: the iteration slots it uses
// transiently are popped before it returns.
func Pull(s State, idx int) luna.Value {
	switch t := s.TypeOf(idx); t {
	case TypeNil:
		return luna.Nil()
	case TypeBoolean:
		return luna.Bool(s.ToBoolean(idx))
	case TypeNumber:
		return luna.Number(s.ToNumber(idx))
	case TypeString:
		return luna.String(s.ToString(idx))
	case TypeTable:
		return pullTable(s, idx)
	default:
		return luna.Errorf("cannot convert %s value", t)
	}
}

func pullTable(s State, idx int) luna.Value {
	// The iteration below grows the stack, so pin a relative index to an
	// absolute one first.
	if idx < 0 {
		idx = s.GetTop() + idx + 1
	}
	t := luna.NewTable()
	s.PushNil()
	for s.Next(idx) {
		// Stack: ... key value. The key must survive as the cursor for
		// the next round, so only the value slot is popped each cycle.
		elem := Pull(s, -1)
		switch s.TypeOf(-2) {
		case TypeString:
			t.Set(luna.StringKey(s.ToString(-2)), elem)
		case TypeNumber:
			t.Set(luna.NumberKey(s.ToNumber(-2)), elem)
		}
		s.Pop(1)
	}
	return t
}

// Push converts v into an engine value on top of the stack. The net
// stack growth is exactly one slot for every kind, nested tables
// included: each table entry's key and value slots are consumed by the
// assignment into the enclosing table.
//
// Error values have no engine representation and push nil. This is a
// deliberate degradation: the error kind exists to report a failed pull
// to the host and is not a transmittable value.
func Push(s State, v luna.Value) {
	switch v.Kind() {
	case luna.KindBool:
		s.PushBoolean(v.Bool())
	case luna.KindNumber:
		s.PushNumber(v.Number())
	case luna.KindString:
		s.PushString(v.Text())
	case luna.KindTable:
		s.NewTable()
		at := s.GetTop()
		for k, elem := range v.Table() {
			if k.Kind() == luna.KindString {
				s.PushString(k.Text())
			} else {
				s.PushNumber(k.Number())
			}
			Push(s, elem)
			s.SetTable(at)
		}
	default:
		s.PushNil()
	}
}

// Call invokes the global function name with args, in order, and returns
// its first result converted to a Value. The protected call requests
// exactly one result slot, so a function returning nothing yields Nil
// (the engine pads missing results with nil).
//
// If the call faults — the global does not exist, is not callable, or
// raises — Call restores the stack to its prior height and returns an
// error wrapping ErrCall. Execution faults are therefore distinguishable
// at the call site from conversion failures, which surface as error-kind
// Values.
func Call(s State, name string, args ...luna.Value) (luna.Value, error) {
	base := s.GetTop()
	s.GetGlobal(name)
	for _, a := range args {
		Push(s, a)
	}
	if err := s.PCall(len(args), 1); err != nil {
		s.SetTop(base)
		return luna.Nil(), fmt.Errorf("%w: %s: %v", ErrCall, name, err)
	}
	ret := Pull(s, -1)
	s.SetTop(base)
	return ret, nil
}
