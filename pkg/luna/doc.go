// Package luna defines the host-side value model for the Lua bridge.
//
// Values crossing the host/engine boundary are represented by Value, a
// closed tagged union over the five convertible Lua kinds (nil, boolean,
// number, string, table) plus an Error kind that marks values the bridge
// could not convert. Table keys are represented by Key, which keeps the
// string and number key domains distinct: StringKey("3") and NumberKey(3)
// are different keys, exactly as they are inside the engine.
//
// # Building Values
//
//	t := luna.NewTable()
//	t.SetField("name", luna.String("ada"))
//	t.SetIndex(1, luna.Number(42))
//
// # Reading Tables
//
//	if v, ok := t.Field("name"); ok {
//	    fmt.Println(v.Text())
//	}
//
// Table iteration order is unspecified; callers must not depend on it.
//
// # Rendering
//
//	fmt.Println(luna.Stringify(t, 0))
//
// Stringify produces an indented, human-readable rendering intended for
// diagnostics and logging, not for machine parsing.
package luna
