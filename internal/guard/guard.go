package guard

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/datacursor/internal/cursor"
	"github.com/dshills/datacursor/internal/event"
)

// hookNames maps cancellable notification types to the Lua functions that
// guard them.
var hookNames = map[event.Type]string{
	event.BeforeDiscard:   "before_discard",
	event.BeforeOverwrite: "before_overwrite",
	event.BeforeSave:      "before_save",
}

// Guard owns a sandboxed Lua state and the subscriptions that route
// cancellable notifications through it. A guard serves one cursor at a time.
type Guard struct {
	L    *lua.LState
	subs []attachment
}

type attachment struct {
	notifier *event.Notifier
	sub      event.Subscription
}

// New compiles and runs the guard script in a fresh sandboxed state. The
// script's top level typically only defines hook functions.
func New(script string) (*Guard, error) {
	L := lua.NewState()
	sandbox(L)

	if err := L.DoString(script); err != nil {
		L.Close()
		return nil, fmt.Errorf("guard: load script: %w", err)
	}
	return &Guard{L: L}, nil
}

// Attach subscribes the guard's hooks to the cursor's cancellable
// notifications. Only hooks the script actually defines are wired.
func (g *Guard) Attach(c *cursor.Cursor) error {
	for typ, name := range hookNames {
		if g.L.GetGlobal(name) == lua.LNil {
			continue
		}
		name := name
		sub, err := c.Notifier().Subscribe(typ, func(e event.Event) bool {
			return g.invoke(name, c, e)
		})
		if err != nil {
			return err
		}
		g.subs = append(g.subs, attachment{notifier: c.Notifier(), sub: sub})
	}
	return nil
}

// Close detaches all hooks and releases the Lua state.
func (g *Guard) Close() {
	for _, a := range g.subs {
		_ = a.notifier.Unsubscribe(a.sub)
	}
	g.subs = nil
	g.L.Close()
}

// invoke calls one hook function. Only an explicit false return vetoes the
// operation.
func (g *Guard) invoke(fn string, c *cursor.Cursor, e event.Event) bool {
	tbl := g.L.NewTable()
	g.L.SetField(tbl, "type", lua.LString(e.Type.String()))
	g.L.SetField(tbl, "position", lua.LString(e.Position.String()))
	g.L.SetField(tbl, "target", lua.LString(e.NewPosition.String()))
	if i, ok := e.Position.Index(); ok {
		g.L.SetField(tbl, "index", lua.LNumber(i))
	}
	g.L.SetField(tbl, "record", recordToLua(g.L, c.CurrentValues()))
	g.L.SetField(tbl, "loaded", recordToLua(g.L, c.LoadedValues()))

	err := g.L.CallByParam(lua.P{
		Fn:      g.L.GetGlobal(fn),
		NRet:    1,
		Protect: true,
	}, tbl)
	if err != nil {
		// Hooks fail open; a broken script must not wedge the cursor.
		return true
	}

	ret := g.L.Get(-1)
	g.L.Pop(1)
	return ret != lua.LFalse
}

// sandbox strips primitives that would let a guard script reach outside the
// process: code loading, the io and os libraries, and module loading from
// disk.
func sandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("io", lua.LNil)
	L.SetGlobal("os", lua.LNil)

	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}
}
