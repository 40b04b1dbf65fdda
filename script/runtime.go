package script

import (
	"github.com/d5/tengo/v2"
	"github.com/milk9111/hero/hero"
	"github.com/milk9111/hero/prefabs"
	"github.com/sirupsen/logrus"
)

var runtimeHooks = []hook{
	{phase: "state_changed", name: "on_state_changed", args: []string{"__hero", "__previous", "__current", "__data"}},
	{phase: "tick", name: "on_tick", args: []string{"__hero", "__data"}},
}

// Runtime runs the hero script. on_state_changed(hero, previous, current,
// data) is called after every transition and on_tick(hero, data) once per
// Tick. data is a map kept across calls and reloads.
type Runtime struct {
	path   string
	script *compiledScript
	data   *tengo.Map
	bind   *binding
	log    *logrus.Entry
}

// LoadRuntime compiles the named script from prefabs and attaches it to h.
func LoadRuntime(h *hero.Hero, path string) (*Runtime, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}
	return NewRuntime(h, path, src)
}

func NewRuntime(h *hero.Hero, name string, src []byte) (*Runtime, error) {
	cs, err := compile(name, src, runtimeHooks)
	if err != nil {
		return nil, err
	}
	log := h.Log().WithField("script", name)
	rt := &Runtime{
		path:   name,
		script: cs,
		data:   &tengo.Map{Value: map[string]tengo.Object{}},
		bind:   newBinding(h, log),
		log:    log,
	}
	h.OnStateChanged(rt.stateChanged)
	return rt, nil
}

func (rt *Runtime) Path() string { return rt.path }

// Data returns the script's persistent map.
func (rt *Runtime) Data() *tengo.Map { return rt.data }

// Reload swaps in new source. On error the running script is kept.
func (rt *Runtime) Reload(src []byte) error {
	cs, err := compile(rt.path, src, runtimeHooks)
	if err != nil {
		return err
	}
	rt.script = cs
	rt.log.Info("script reloaded")
	return nil
}

// ReloadFromPrefabs reloads the script from its prefab path.
func (rt *Runtime) ReloadFromPrefabs() error {
	src, err := prefabs.LoadScript(rt.path)
	if err != nil {
		return err
	}
	return rt.Reload(src)
}

// Tick calls on_tick and applies the requests it made.
func (rt *Runtime) Tick() error {
	err := rt.script.run("tick", "on_tick", map[string]tengo.Object{
		"__hero": rt.bind.api,
		"__data": rt.data,
	})
	if err != nil {
		rt.bind.pending = nil
		return err
	}
	return rt.bind.flush()
}

func (rt *Runtime) stateChanged(_ *hero.Hero, previous, current string) {
	err := rt.script.run("state_changed", "on_state_changed", map[string]tengo.Object{
		"__hero":     rt.bind.api,
		"__previous": stringObject(previous),
		"__current":  stringObject(current),
		"__data":     rt.data,
	})
	if err == nil {
		err = rt.bind.flush()
	} else {
		rt.bind.pending = nil
	}
	if err != nil {
		rt.log.WithError(err).Warn("on_state_changed failed")
	}
}
