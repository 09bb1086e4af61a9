package main

import (
	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"

	"github.com/smallfx/luna/pkg/bridge/gopherlua"
)

// uuid implements host.uuid() -> string
func (rt *Runtime) uuid(L *lua.LState) int {
	st := gopherlua.Wrap(L)
	st.PushString(uuid.NewString())
	return 1
}
