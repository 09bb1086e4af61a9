package main

import (
	"encoding/json"

	"github.com/kaptinlin/jsonrepair"
	lua "github.com/yuin/gopher-lua"

	"github.com/smallfx/luna/pkg/bridge"
	"github.com/smallfx/luna/pkg/bridge/gopherlua"
	"github.com/smallfx/luna/pkg/luna"
)

// jsonEncode implements host.json_encode(value) -> string
func (rt *Runtime) jsonEncode(L *lua.LState) int {
	st := gopherlua.Wrap(L)
	v := bridge.Pull(st, 1)
	data, err := json.Marshal(luna.ToAny(v))
	if err != nil {
		st.PushNil()
		return 1
	}
	st.PushString(string(data))
	return 1
}

// jsonDecode implements host.json_decode(str) -> value
// Malformed input is run through jsonrepair before giving up, so
// almost-JSON (trailing commas, single quotes) still decodes.
func (rt *Runtime) jsonDecode(L *lua.LState) int {
	st := gopherlua.Wrap(L)
	raw := st.ToString(1)
	if raw == "" {
		st.PushNil()
		return 1
	}

	var v any
	if err := unmarshalJSON([]byte(raw), &v); err != nil {
		st.PushNil()
		return 1
	}
	bridge.Push(st, luna.FromAny(v))
	return 1
}

// unmarshalJSON unmarshals data into v, attempting to repair malformed
// JSON: if the initial unmarshal fails with a syntax error, the input is
// repaired and retried.
func unmarshalJSON(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	if _, ok := err.(*json.SyntaxError); ok {
		fixed, err := jsonrepair.JSONRepair(string(data))
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(fixed), v)
	}
	return err
}
