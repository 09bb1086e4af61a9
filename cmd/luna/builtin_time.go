package main

import (
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/smallfx/luna/pkg/bridge/gopherlua"
)

// now implements host.now() -> number
// Returns the current Unix timestamp in seconds with millisecond
// precision.
func (rt *Runtime) now(L *lua.LState) int {
	st := gopherlua.Wrap(L)
	st.PushNumber(float64(time.Now().UnixMilli()) / 1000.0)
	return 1
}

// parseTime implements host.parse_time(iso_string) -> number
// Parses an ISO 8601 date string into a Unix timestamp in seconds.
// Returns nil if parsing fails.
func (rt *Runtime) parseTime(L *lua.LState) int {
	st := gopherlua.Wrap(L)
	isoStr := st.ToString(1)
	if isoStr == "" {
		st.PushNil()
		return 1
	}

	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, format := range formats {
		t, err := time.Parse(format, isoStr)
		if err == nil {
			st.PushNumber(float64(t.UnixMilli()) / 1000.0)
			return 1
		}
	}

	st.PushNil()
	return 1
}
