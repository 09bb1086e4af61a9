package main

import (
	"github.com/itchyny/gojq"
	lua "github.com/yuin/gopher-lua"

	"github.com/smallfx/luna/pkg/bridge"
	"github.com/smallfx/luna/pkg/bridge/gopherlua"
	"github.com/smallfx/luna/pkg/luna"
)

// jq implements host.jq(value, query) -> results
// The query runs over the value's JSON shape; results come back as a
// 1..n table, one entry per emitted value. A bad query yields nil.
func (rt *Runtime) jq(L *lua.LState) int {
	st := gopherlua.Wrap(L)
	input := bridge.Pull(st, 1)
	src := st.ToString(2)

	query, err := gojq.Parse(src)
	if err != nil {
		rt.logger.Debug("jq parse failed", "query", src, "err", err)
		st.PushNil()
		return 1
	}

	results := luna.NewTable()
	n := 0
	iter := query.Run(luna.ToAny(input))
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			rt.logger.Debug("jq evaluation error", "err", err)
			continue
		}
		n++
		results.SetIndex(float64(n), luna.FromAny(v))
	}
	bridge.Push(st, results)
	return 1
}
