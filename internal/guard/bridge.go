package guard

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/datacursor/internal/datasource"
)

// recordToLua converts a record to a Lua table. Field values are opaque
// scalars; anything non-scalar is rendered as a string.
func recordToLua(L *lua.LState, rec datasource.Record) lua.LValue {
	if rec == nil {
		return lua.LNil
	}
	tbl := L.NewTable()
	for k, v := range rec {
		L.SetField(tbl, k, valueToLua(v))
	}
	return tbl
}

func valueToLua(v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(x)
	case int:
		return lua.LNumber(x)
	case int64:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	case string:
		return lua.LString(x)
	default:
		return lua.LString(fmt.Sprintf("%v", x))
	}
}
