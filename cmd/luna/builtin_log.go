package main

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/smallfx/luna/pkg/bridge"
	"github.com/smallfx/luna/pkg/bridge/gopherlua"
	"github.com/smallfx/luna/pkg/luna"
)

// log implements host.log(...)
// Arguments are pulled through the bridge and joined with tabs; strings
// pass through bare, everything else is stringified.
func (rt *Runtime) log(L *lua.LState) int {
	st := gopherlua.Wrap(L)
	n := st.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		v := bridge.Pull(st, i)
		if v.Kind() == luna.KindString {
			parts = append(parts, v.Text())
		} else {
			parts = append(parts, luna.Stringify(v, 0))
		}
	}
	rt.logger.Info(strings.Join(parts, "\t"))
	return 0
}
