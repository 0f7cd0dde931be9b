package lua

import (
	"sort"

	"github.com/Otixa/luajs/engine"
	glua "github.com/yuin/gopher-lua"
)

// ToValue converts a Lua value into the portable value model.
//
// Tables whose keys are exactly 1..n become []any, all other tables become
// map[string]any. Functions, userdata, threads and channels become nil, as
// does a table that contains itself.
func ToValue(lv glua.LValue) engine.Value {
	return toValue(lv, map[*glua.LTable]bool{})
}

func toValue(lv glua.LValue, seen map[*glua.LTable]bool) engine.Value {
	switch v := lv.(type) {
	case glua.LBool:
		return bool(v)
	case glua.LNumber:
		return float64(v)
	case glua.LString:
		return string(v)
	case *glua.LTable:
		if seen[v] {
			return nil
		}
		seen[v] = true
		defer delete(seen, v)
		return tableValue(v, seen)
	default:
		return nil
	}
}

func tableValue(t *glua.LTable, seen map[*glua.LTable]bool) engine.Value {
	count := 0
	t.ForEach(func(_, _ glua.LValue) { count++ })

	if n := t.MaxN(); n > 0 && n == count {
		out := make([]any, n)
		for i := 1; i <= n; i++ {
			out[i-1] = toValue(t.RawGetInt(i), seen)
		}
		return out
	}

	out := make(map[string]any, count)
	t.ForEach(func(k, v glua.LValue) {
		var key string
		switch kv := k.(type) {
		case glua.LString:
			key = string(kv)
		case glua.LNumber:
			key = engine.FormatNumber(float64(kv))
		default:
			key = k.String()
		}
		out[key] = toValue(v, seen)
	})
	return out
}

// FromValue converts a portable value into a Lua value owned by L.
func FromValue(L *glua.LState, v engine.Value) glua.LValue {
	switch x := v.(type) {
	case nil:
		return glua.LNil
	case bool:
		return glua.LBool(x)
	case float64:
		return glua.LNumber(x)
	case string:
		return glua.LString(x)
	case []any:
		t := L.CreateTable(len(x), 0)
		for i, item := range x {
			t.RawSetInt(i+1, FromValue(L, item))
		}
		return t
	case map[string]any:
		t := L.CreateTable(0, len(x))
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			t.RawSetString(k, FromValue(L, x[k]))
		}
		return t
	default:
		return FromValue(L, engine.Normalize(x))
	}
}
