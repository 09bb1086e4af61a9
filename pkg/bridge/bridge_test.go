package bridge

import (
	"errors"
	"fmt"
	"testing"

	"github.com/smallfx/luna/pkg/luna"
)

// The fake engine below implements the State stack protocol over plain
// Go values: nil, bool, float64, string, *fakeTable, and opaque (a
// stand-in for function/userdata/thread slots). It exists so the
// converter's stack discipline can be checked without a real engine.

type opaque struct {
	tag Type
}

// fakeTable is an ordered association so the cursor protocol has a
// stable walk order.
type fakeTable struct {
	keys []any
	vals []any
}

func (t *fakeTable) set(k, v any) {
	for i, existing := range t.keys {
		if existing == k {
			t.vals[i] = v
			return
		}
	}
	t.keys = append(t.keys, k)
	t.vals = append(t.vals, v)
}

func (t *fakeTable) next(prev any) (any, any, bool) {
	if prev == nil {
		if len(t.keys) == 0 {
			return nil, nil, false
		}
		return t.keys[0], t.vals[0], true
	}
	for i, k := range t.keys {
		if k == prev {
			if i+1 < len(t.keys) {
				return t.keys[i+1], t.vals[i+1], true
			}
			return nil, nil, false
		}
	}
	return nil, nil, false
}

// fakeFunc is a callable global: it receives the argument slots and
// returns result slots or a fault.
type fakeFunc func(args []any) ([]any, error)

type fakeState struct {
	stack   []any
	globals map[string]any
}

func newFakeState() *fakeState {
	return &fakeState{globals: make(map[string]any)}
}

// index converts a protocol index (1-based, negative from the top) to a
// slice offset, or -1 if out of range.
func (s *fakeState) index(idx int) int {
	if idx < 0 {
		idx = len(s.stack) + idx + 1
	}
	if idx < 1 || idx > len(s.stack) {
		return -1
	}
	return idx - 1
}

func (s *fakeState) at(idx int) any {
	i := s.index(idx)
	if i < 0 {
		return nil
	}
	return s.stack[i]
}

func (s *fakeState) GetTop() int { return len(s.stack) }

func (s *fakeState) SetTop(idx int) {
	if idx < 0 {
		idx = len(s.stack) + idx + 1
	}
	for len(s.stack) < idx {
		s.stack = append(s.stack, nil)
	}
	s.stack = s.stack[:idx]
}

func (s *fakeState) Pop(n int) { s.SetTop(len(s.stack) - n) }

func (s *fakeState) TypeOf(idx int) Type {
	switch v := s.at(idx).(type) {
	case nil:
		return TypeNil
	case bool:
		return TypeBoolean
	case float64:
		return TypeNumber
	case string:
		return TypeString
	case *fakeTable:
		return TypeTable
	case opaque:
		return v.tag
	case fakeFunc:
		return TypeFunction
	default:
		return TypeUserdata
	}
}

func (s *fakeState) ToBoolean(idx int) bool {
	b, _ := s.at(idx).(bool)
	return b
}

func (s *fakeState) ToNumber(idx int) float64 {
	n, _ := s.at(idx).(float64)
	return n
}

func (s *fakeState) ToString(idx int) string {
	str, _ := s.at(idx).(string)
	return str
}

func (s *fakeState) PushNil()             { s.stack = append(s.stack, nil) }
func (s *fakeState) PushBoolean(b bool)   { s.stack = append(s.stack, b) }
func (s *fakeState) PushNumber(n float64) { s.stack = append(s.stack, n) }
func (s *fakeState) PushString(str string) {
	s.stack = append(s.stack, str)
}

func (s *fakeState) NewTable() { s.stack = append(s.stack, &fakeTable{}) }

func (s *fakeState) SetTable(idx int) {
	t, ok := s.at(idx).(*fakeTable)
	v := s.at(-1)
	k := s.at(-2)
	s.Pop(2)
	if ok {
		t.set(k, v)
	}
}

func (s *fakeState) Next(idx int) bool {
	t, ok := s.at(idx).(*fakeTable)
	prev := s.at(-1)
	s.Pop(1)
	if !ok {
		return false
	}
	k, v, more := t.next(prev)
	if !more {
		return false
	}
	s.stack = append(s.stack, k, v)
	return true
}

func (s *fakeState) GetGlobal(name string) {
	s.stack = append(s.stack, s.globals[name])
}

func (s *fakeState) PCall(nargs, nresults int) error {
	fnIdx := len(s.stack) - nargs - 1
	fn, ok := s.stack[fnIdx].(fakeFunc)
	args := append([]any(nil), s.stack[fnIdx+1:]...)
	s.stack = s.stack[:fnIdx]
	if !ok {
		return errors.New("attempt to call a non-function value")
	}
	rets, err := fn(args)
	if err != nil {
		return err
	}
	for len(rets) < nresults {
		rets = append(rets, nil)
	}
	s.stack = append(s.stack, rets[:nresults]...)
	return nil
}

// ----------------------------------------------------------------------

func TestPullScalars(t *testing.T) {
	s := newFakeState()
	s.PushNil()
	s.PushBoolean(true)
	s.PushNumber(1.5)
	s.PushString("hi")

	tests := []struct {
		idx  int
		want luna.Value
	}{
		{1, luna.Nil()},
		{2, luna.Bool(true)},
		{3, luna.Number(1.5)},
		{4, luna.String("hi")},
		{-1, luna.String("hi")},
	}
	for _, tt := range tests {
		if got := Pull(s, tt.idx); !luna.Equal(got, tt.want) {
			t.Errorf("Pull(%d) = %v, want %v", tt.idx, got, tt.want)
		}
	}
	if s.GetTop() != 4 {
		t.Errorf("stack height = %d after scalar pulls, want 4", s.GetTop())
	}
}

func TestPullTable(t *testing.T) {
	inner := &fakeTable{}
	inner.set("deep", true)
	tbl := &fakeTable{}
	tbl.set("name", "ada")
	tbl.set(3.0, "numeric")
	tbl.set("3", "text")
	tbl.set("inner", inner)

	s := newFakeState()
	s.stack = append(s.stack, tbl)

	before := s.GetTop()
	got := Pull(s, 1)
	if s.GetTop() != before {
		t.Fatalf("stack height changed: %d -> %d", before, s.GetTop())
	}

	if got.Kind() != luna.KindTable || got.Len() != 4 {
		t.Fatalf("Pull = %v", got)
	}
	if v, ok := got.Field("name"); !ok || v.Text() != "ada" {
		t.Errorf("Field(name) = %v, %v", v, ok)
	}
	// Number key 3 and string key "3" stay distinct.
	if v, ok := got.Index(3); !ok || v.Text() != "numeric" {
		t.Errorf("Index(3) = %v, %v", v, ok)
	}
	if v, ok := got.Field("3"); !ok || v.Text() != "text" {
		t.Errorf(`Field("3") = %v, %v`, v, ok)
	}
	nested, ok := got.Field("inner")
	if !ok || nested.Kind() != luna.KindTable {
		t.Fatalf("Field(inner) = %v, %v", nested, ok)
	}
	if v, ok := nested.Field("deep"); !ok || !v.Bool() {
		t.Errorf("nested Field(deep) = %v, %v", v, ok)
	}
}

func TestPullTableSkipsNonScalarKeys(t *testing.T) {
	tbl := &fakeTable{}
	tbl.set("keep", 1.0)
	tbl.set(opaque{TypeFunction}, 2.0)
	tbl.set(true, 3.0)

	s := newFakeState()
	s.stack = append(s.stack, tbl)

	got := Pull(s, 1)
	if got.Len() != 1 {
		t.Errorf("table should keep only the string-keyed entry, got %d entries", got.Len())
	}
	if s.GetTop() != 1 {
		t.Errorf("stack height = %d, want 1", s.GetTop())
	}
}

func TestPullUnsupported(t *testing.T) {
	for _, tag := range []Type{TypeFunction, TypeUserdata, TypeThread} {
		t.Run(tag.String(), func(t *testing.T) {
			s := newFakeState()
			s.stack = append(s.stack, opaque{tag})

			got := Pull(s, 1)
			if got.Kind() != luna.KindError {
				t.Fatalf("Pull(%s slot) = %v, want error value", tag, got)
			}
			if got.Message() == "" {
				t.Error("error value should carry a diagnostic")
			}
		})
	}
}

func TestPushNetGrowthIsOne(t *testing.T) {
	nested := luna.NewTable()
	nested.SetField("deep", luna.Bool(true))
	big := luna.NewTable()
	big.SetField("inner", nested)
	big.SetIndex(1, luna.Number(10))

	values := []luna.Value{
		luna.Nil(),
		luna.Bool(false),
		luna.Number(2.5),
		luna.String("x"),
		luna.NewTable(),
		big,
		luna.Errorf("boom"),
	}
	s := newFakeState()
	for _, v := range values {
		before := s.GetTop()
		Push(s, v)
		if got := s.GetTop() - before; got != 1 {
			t.Errorf("Push(%v) net growth = %d, want 1", v, got)
		}
	}
}

func TestPushPullRoundTrip(t *testing.T) {
	nested := luna.NewTable()
	nested.SetField("deep", luna.Bool(true))
	tbl := luna.NewTable()
	tbl.SetField("name", luna.String("ada"))
	tbl.SetField("3", luna.String("text"))
	tbl.SetIndex(3, luna.String("numeric"))
	tbl.SetIndex(1, luna.Number(10))
	tbl.SetField("inner", nested)

	tests := []struct {
		name string
		v    luna.Value
	}{
		{"nil", luna.Nil()},
		{"bool", luna.Bool(true)},
		{"number", luna.Number(-1.25)},
		{"string", luna.String("hello")},
		{"empty table", luna.NewTable()},
		{"mixed table", tbl},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFakeState()
			Push(s, tt.v)
			got := Pull(s, -1)
			if !luna.Equal(got, tt.v) {
				t.Errorf("round trip = %v, want %v", got, tt.v)
			}
			if s.GetTop() != 1 {
				t.Errorf("stack height = %d, want 1", s.GetTop())
			}
		})
	}
}

func TestPushErrorDegradesToNil(t *testing.T) {
	s := newFakeState()
	Push(s, luna.Errorf("host-only diagnostic"))
	// The degradation is intentional: error values have no engine form.
	if got := s.TypeOf(-1); got != TypeNil {
		t.Errorf("engine slot after pushing an error value = %s, want nil", got)
	}
}

func TestCallSuccess(t *testing.T) {
	s := newFakeState()
	s.globals["sum"] = fakeFunc(func(args []any) ([]any, error) {
		a, _ := args[0].(float64)
		b, _ := args[1].(float64)
		return []any{a + b}, nil
	})

	got, err := Call(s, "sum", luna.Number(3), luna.Number(4))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !luna.Equal(got, luna.Number(7)) {
		t.Errorf("Call result = %v, want 7", got)
	}
	if s.GetTop() != 0 {
		t.Errorf("stack height = %d after call, want 0", s.GetTop())
	}
}

func TestCallArgumentOrder(t *testing.T) {
	s := newFakeState()
	s.globals["cat"] = fakeFunc(func(args []any) ([]any, error) {
		out := ""
		for _, a := range args {
			out += fmt.Sprint(a)
		}
		return []any{out}, nil
	})

	got, err := Call(s, "cat", luna.String("A"), luna.String("B"))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got.Text() != "AB" {
		t.Errorf("arguments observed as %q, want %q", got.Text(), "AB")
	}
}

func TestCallUnderReturningYieldsNil(t *testing.T) {
	s := newFakeState()
	s.globals["noop"] = fakeFunc(func([]any) ([]any, error) {
		return nil, nil
	})

	got, err := Call(s, "noop")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !got.IsNil() {
		t.Errorf("result = %v, want nil", got)
	}
}

func TestCallFaults(t *testing.T) {
	s := newFakeState()
	s.globals["answer"] = 42.0
	s.globals["boom"] = fakeFunc(func([]any) ([]any, error) {
		return nil, errors.New("boom")
	})

	tests := []struct {
		name   string
		target string
	}{
		{"missing global", "nonexistent"},
		{"not callable", "answer"},
		{"raising function", "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Call(s, tt.target, luna.Number(1))
			if err == nil {
				t.Fatal("Call should fail")
			}
			if !errors.Is(err, ErrCall) {
				t.Errorf("error %v should wrap ErrCall", err)
			}
			if s.GetTop() != 0 {
				t.Errorf("stack height = %d after fault, want 0", s.GetTop())
			}
		})
	}
}

func TestStackBalanceAcrossSequence(t *testing.T) {
	s := newFakeState()
	s.globals["id"] = fakeFunc(func(args []any) ([]any, error) {
		return args, nil
	})

	tbl := luna.NewTable()
	tbl.SetField("k", luna.String("v"))

	// Interleave operations; only explicit pushes may remain.
	Push(s, tbl)
	_ = Pull(s, -1)
	Push(s, luna.Number(1))
	if _, err := Call(s, "id", tbl); err != nil {
		t.Fatalf("Call: %v", err)
	}
	_ = Pull(s, 1)

	if s.GetTop() != 2 {
		t.Errorf("stack height = %d, want the 2 intentionally pushed slots", s.GetTop())
	}
}
