package script

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/hero/hero"
	"github.com/milk9111/hero/prefabs"
	"github.com/sirupsen/logrus"
)

var itemHooks = []hook{
	{phase: "using", name: "on_using", args: []string{"__item"}},
	{phase: "update", name: "on_using_update", args: []string{"__item"}},
}

// Item is an equipment item whose usage is written in tengo. The script
// defines on_using(item) and optionally on_using_update(item); the item map
// holds name, variant, hero, a state map reset on every usage, finish() and
// is_finished().
type Item struct {
	name       string
	variant    int
	assignable bool
	script     *compiledScript
	bind       *binding
	log        *logrus.Entry

	usage *hero.ItemUsage
	state *tengo.Map
}

// LoadItem compiles the item script from prefabs.
func LoadItem(h *hero.Hero, spec prefabs.ItemSpec) (*Item, error) {
	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		return nil, fmt.Errorf("script: item %s: %w", spec.Name, err)
	}
	return NewItem(h, spec.Name, spec.Variant, spec.Assignable, src)
}

func NewItem(h *hero.Hero, name string, variant int, assignable bool, src []byte) (*Item, error) {
	cs, err := compile(name, src, itemHooks)
	if err != nil {
		return nil, err
	}
	if !cs.defined["on_using"] {
		return nil, fmt.Errorf("%w: %s has no on_using", ErrMissingHook, name)
	}
	log := h.Log().WithField("item", name)
	return &Item{
		name:       name,
		variant:    variant,
		assignable: assignable,
		script:     cs,
		bind:       newBinding(h, log),
		log:        log,
	}, nil
}

func (it *Item) Name() string { return it.name }

func (it *Item) IsAssignable() bool { return it.assignable }

func (it *Item) OnUsing(usage *hero.ItemUsage) {
	it.usage = usage
	it.state = &tengo.Map{Value: map[string]tengo.Object{}}
	it.call("using", "on_using")
}

func (it *Item) OnUsingUpdate(usage *hero.ItemUsage) {
	if usage != it.usage {
		return
	}
	it.call("update", "on_using_update")
}

// call runs a hook. A failing script finishes the usage so the hero is not
// stuck in the item state.
func (it *Item) call(phase, hookName string) {
	usage := it.usage
	err := it.script.run(phase, hookName, map[string]tengo.Object{"__item": it.object()})
	if err != nil {
		it.bind.pending = nil
		it.log.WithError(err).Warn("item script failed")
		usage.Finish()
		return
	}
	if err := it.bind.flush(); err != nil {
		it.log.WithError(err).Warn("item script request failed")
	}
}

func (it *Item) object() *tengo.ImmutableMap {
	usage := it.usage
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"name":    stringObject(it.name),
		"variant": intObject(it.variant),
		"hero":    it.bind.api,
		"state":   it.state,
		"finish": &tengo.UserFunction{Name: "finish", Value: func(args ...tengo.Object) (tengo.Object, error) {
			usage.Finish()
			return tengo.TrueValue, nil
		}},
		"is_finished": &tengo.UserFunction{Name: "is_finished", Value: func(args ...tengo.Object) (tengo.Object, error) {
			return boolObject(usage.IsFinished()), nil
		}},
	}}
}
