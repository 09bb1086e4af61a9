package main

import (
	"os"
	"slices"

	lua "github.com/yuin/gopher-lua"

	"github.com/smallfx/luna/pkg/bridge/gopherlua"
)

// env implements host.env(key) -> value
// When the config lists env names, only those are readable; anything
// else (and unset variables) yields nil.
func (rt *Runtime) env(L *lua.LState) int {
	st := gopherlua.Wrap(L)
	key := st.ToString(1)
	if key == "" {
		st.PushNil()
		return 1
	}

	if len(rt.cfg.Env) > 0 && !slices.Contains(rt.cfg.Env, key) {
		st.PushNil()
		return 1
	}

	value := os.Getenv(key)
	if value == "" {
		st.PushNil()
		return 1
	}
	st.PushString(value)
	return 1
}
