// Package script binds the hero to tengo scripts: a hero script observing
// state changes and ticks, and scripted equipment items.
package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

var (
	ErrMissingHook = errors.New("script: missing hook")
	ErrNoHooks     = errors.New("script: no hooks defined")
)

// hook is a top-level script function called when __phase matches.
type hook struct {
	phase string
	name  string
	args  []string
}

type compiledScript struct {
	name     string
	compiled *tengo.Compiled
	defined  map[string]bool
}

// compile inspects src for the hooks it defines, then compiles it again with a
// dispatch block calling only those. The globals are the hook arguments.
func compile(name string, src []byte, hooks []hook) (*compiledScript, error) {
	first := newScript(src)
	c, err := first.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	if err := c.Run(); err != nil {
		return nil, fmt.Errorf("script: run %s: %w", name, err)
	}

	defined := make(map[string]bool, len(hooks))
	globals := map[string]bool{"__phase": true}
	var b strings.Builder
	b.Write(src)
	b.WriteString("\n")
	for _, h := range hooks {
		if !c.IsDefined(h.name) {
			continue
		}
		defined[h.name] = true
		for _, a := range h.args {
			globals[a] = true
		}
		fmt.Fprintf(&b, "if __phase == %q {\n\t%s(%s)\n}\n", h.phase, h.name, strings.Join(h.args, ", "))
	}
	if len(defined) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoHooks, name)
	}

	s := newScript([]byte(b.String()))
	for g := range globals {
		_ = s.Add(g, tengo.UndefinedValue)
	}
	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &compiledScript{name: name, compiled: compiled, defined: defined}, nil
}

func newScript(src []byte) *tengo.Script {
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return s
}

// run sets the globals and runs the phase. It is a no-op for a phase whose
// hook the script does not define.
func (c *compiledScript) run(phase, hookName string, globals map[string]tengo.Object) error {
	if !c.defined[hookName] {
		return nil
	}
	if err := c.compiled.Set("__phase", phase); err != nil {
		return err
	}
	for k, v := range globals {
		if err := c.compiled.Set(k, v); err != nil {
			return err
		}
	}
	if err := c.compiled.Run(); err != nil {
		return fmt.Errorf("script: %s %s: %w", c.name, phase, err)
	}
	return nil
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsInt(obj tengo.Object, def int) int {
	if obj == nil {
		return def
	}
	if v, ok := tengo.ToInt(obj); ok {
		return v
	}
	return def
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func intObject(v int) tengo.Object { return &tengo.Int{Value: int64(v)} }

func stringObject(s string) tengo.Object { return &tengo.String{Value: s} }

func pairObject(a, b int) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{intObject(a), intObject(b)}}
}
