package main

import (
	"log/slog"

	lua "github.com/yuin/gopher-lua"

	"github.com/smallfx/luna/pkg/bridge"
	"github.com/smallfx/luna/pkg/bridge/gopherlua"
	"github.com/smallfx/luna/pkg/luna"
	"github.com/smallfx/luna/pkg/store"
)

// Runtime holds the state for a script run: the engine, the key-value
// store backing the kv builtins, and the runner configuration.
type Runtime struct {
	state  *gopherlua.State
	cfg    *Config
	store  store.Store
	logger *slog.Logger
}

// newRuntime creates an engine state, opens the store, registers the
// host builtins and defines configured globals.
func newRuntime(cfg *Config, logger *slog.Logger) (*Runtime, error) {
	kv, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	rt := &Runtime{
		state:  gopherlua.New(),
		cfg:    cfg,
		store:  kv,
		logger: logger,
	}
	rt.registerBuiltins()
	rt.defineGlobals()
	return rt, nil
}

func openStore(cfg *Config) (store.Store, error) {
	if cfg.Store == "" {
		return store.NewMemory(), nil
	}
	return store.NewBadger(store.BadgerOptions{Dir: cfg.Store})
}

// Close releases the engine and the store.
func (rt *Runtime) Close() {
	rt.state.Close()
	if err := rt.store.Close(); err != nil {
		rt.logger.Warn("closing store", "err", err)
	}
}

// registerBuiltins binds the host table. Each builtin reads its
// arguments and writes its results through the bridge, so every call
// from script code exercises both conversion directions.
func (rt *Runtime) registerBuiltins() {
	L := rt.state.L
	host := L.NewTable()
	bind := func(name string, fn lua.LGFunction) {
		host.RawSetString(name, L.NewFunction(fn))
	}

	bind("json_encode", rt.jsonEncode)
	bind("json_decode", rt.jsonDecode)
	bind("jq", rt.jq)
	bind("env", rt.env)
	bind("now", rt.now)
	bind("parse_time", rt.parseTime)
	bind("log", rt.log)
	bind("uuid", rt.uuid)
	bind("kv_get", rt.kvGet)
	bind("kv_set", rt.kvSet)
	bind("kv_del", rt.kvDel)
	bind("kv_keys", rt.kvKeys)

	L.SetGlobal("host", host)
}

// defineGlobals pushes each configured global through the bridge and
// binds it by name.
func (rt *Runtime) defineGlobals() {
	for name, raw := range rt.cfg.Globals {
		bridge.Push(rt.state, luna.FromAny(raw))
		rt.state.SetGlobal(name)
	}
}

// entryArgs converts the configured entry arguments to host values.
func (rt *Runtime) entryArgs() []luna.Value {
	args := make([]luna.Value, 0, len(rt.cfg.Args))
	for _, a := range rt.cfg.Args {
		args = append(args, luna.FromAny(a))
	}
	return args
}
