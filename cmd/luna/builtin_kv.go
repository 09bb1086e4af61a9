package main

import (
	"context"
	"errors"

	lua "github.com/yuin/gopher-lua"

	"github.com/smallfx/luna/pkg/bridge"
	"github.com/smallfx/luna/pkg/bridge/gopherlua"
	"github.com/smallfx/luna/pkg/luna"
	"github.com/smallfx/luna/pkg/store"
)

// kvGet implements host.kv_get(key) -> value
// Missing keys yield nil.
func (rt *Runtime) kvGet(L *lua.LState) int {
	st := gopherlua.Wrap(L)
	key := st.ToString(1)
	if key == "" {
		st.PushNil()
		return 1
	}

	v, err := rt.store.Get(context.Background(), key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			rt.logger.Warn("kv_get failed", "key", key, "err", err)
		}
		st.PushNil()
		return 1
	}
	bridge.Push(st, v)
	return 1
}

// kvSet implements host.kv_set(key, value)
func (rt *Runtime) kvSet(L *lua.LState) int {
	st := gopherlua.Wrap(L)
	key := st.ToString(1)
	if key == "" {
		return 0
	}

	v := bridge.Pull(st, 2)
	if err := rt.store.Put(context.Background(), key, v); err != nil {
		rt.logger.Warn("kv_set failed", "key", key, "err", err)
	}
	return 0
}

// kvDel implements host.kv_del(key)
func (rt *Runtime) kvDel(L *lua.LState) int {
	st := gopherlua.Wrap(L)
	key := st.ToString(1)
	if key == "" {
		return 0
	}
	if err := rt.store.Delete(context.Background(), key); err != nil {
		rt.logger.Warn("kv_del failed", "key", key, "err", err)
	}
	return 0
}

// kvKeys implements host.kv_keys(prefix) -> {1..n keys}
func (rt *Runtime) kvKeys(L *lua.LState) int {
	st := gopherlua.Wrap(L)
	prefix := st.ToString(1)

	keys, err := rt.store.Keys(context.Background(), prefix)
	if err != nil {
		rt.logger.Warn("kv_keys failed", "prefix", prefix, "err", err)
		st.PushNil()
		return 1
	}
	t := luna.NewTable()
	for i, k := range keys {
		t.SetIndex(float64(i+1), luna.String(k))
	}
	bridge.Push(st, t)
	return 1
}
