// Package gopherlua adapts a gopher-lua interpreter state to the
// bridge.State stack protocol, so the bridge can marshal values into and
// out of a real engine.
package gopherlua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/smallfx/luna/pkg/bridge"
)

// GoFunc is the signature for host functions callable from Lua. The
// function reads its arguments from stack positions 1..GetTop and returns
// the number of results it pushed.
type GoFunc func(*State) int

// State wraps a *lua.LState behind the bridge's stack protocol.
type State struct {
	L *lua.LState
}

// New creates a fresh interpreter with the standard libraries opened.
// The caller owns the state and must Close it.
func New() *State {
	return &State{L: lua.NewState()}
}

// Wrap adapts an existing interpreter state. Used inside host-function
// callbacks, where gopher-lua hands the callback its own LState.
func Wrap(L *lua.LState) *State {
	return &State{L: L}
}

// Close releases the interpreter.
func (s *State) Close() {
	s.L.Close()
}

// DoString compiles and runs a chunk of Lua source. Values returned by
// the chunk remain on the stack.
func (s *State) DoString(source string) error {
	return s.L.DoString(source)
}

// Register binds fn as the global name.
func (s *State) Register(name string, fn GoFunc) {
	s.L.SetGlobal(name, s.L.NewFunction(func(L *lua.LState) int {
		return fn(Wrap(L))
	}))
}

func (s *State) GetTop() int { return s.L.GetTop() }

func (s *State) SetTop(idx int) { s.L.SetTop(idx) }

func (s *State) Pop(n int) { s.L.Pop(n) }

// TypeOf maps gopher-lua's value types onto the bridge's tag set.
// Channels, a gopher-lua extension with no Lua counterpart, report as
// userdata.
func (s *State) TypeOf(idx int) bridge.Type {
	switch s.L.Get(idx).Type() {
	case lua.LTNil:
		return bridge.TypeNil
	case lua.LTBool:
		return bridge.TypeBoolean
	case lua.LTNumber:
		return bridge.TypeNumber
	case lua.LTString:
		return bridge.TypeString
	case lua.LTTable:
		return bridge.TypeTable
	case lua.LTFunction:
		return bridge.TypeFunction
	case lua.LTThread:
		return bridge.TypeThread
	default:
		return bridge.TypeUserdata
	}
}

func (s *State) ToBoolean(idx int) bool {
	return lua.LVAsBool(s.L.Get(idx))
}

func (s *State) ToNumber(idx int) float64 {
	return float64(lua.LVAsNumber(s.L.Get(idx)))
}

func (s *State) ToString(idx int) string {
	return lua.LVAsString(s.L.Get(idx))
}

func (s *State) PushNil() { s.L.Push(lua.LNil) }

func (s *State) PushBoolean(b bool) { s.L.Push(lua.LBool(b)) }

func (s *State) PushNumber(n float64) { s.L.Push(lua.LNumber(n)) }

func (s *State) PushString(str string) { s.L.Push(lua.LString(str)) }

func (s *State) NewTable() {
	s.L.Push(s.L.NewTable())
}

// SetTable assigns into the table at idx, consuming the key and value on
// top of the stack. A non-table slot at idx consumes the pair without
// effect.
func (s *State) SetTable(idx int) {
	tbl, ok := s.L.Get(idx).(*lua.LTable)
	v := s.L.Get(-1)
	k := s.L.Get(-2)
	s.L.Pop(2)
	if ok {
		s.L.SetTable(tbl, k, v)
	}
}

// Next implements the cursor iteration protocol over the table at idx.
func (s *State) Next(idx int) bool {
	tbl, ok := s.L.Get(idx).(*lua.LTable)
	key := s.L.Get(-1)
	s.L.Pop(1)
	if !ok {
		return false
	}
	nk, nv := tbl.Next(key)
	if nk == lua.LNil {
		return false
	}
	s.L.Push(nk)
	s.L.Push(nv)
	return true
}

func (s *State) GetGlobal(name string) {
	s.L.Push(s.L.GetGlobal(name))
}

// SetGlobal pops the top of the stack and binds it to the global name.
func (s *State) SetGlobal(name string) {
	v := s.L.Get(-1)
	s.L.Pop(1)
	s.L.SetGlobal(name, v)
}

func (s *State) PCall(nargs, nresults int) error {
	return s.L.PCall(nargs, nresults, nil)
}

// static check: *State satisfies the bridge's stack protocol.
var _ bridge.State = (*State)(nil)
