package engine

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

// Value is a portable script value: nil, float64, string, bool, []any or
// map[string]any, nested recursively. Anything else is normalized away
// before it crosses the engine boundary.
type Value = any

// Normalize converts an arbitrary Go value into the portable value model.
// Integers and float32 widen to float64, slices and arrays become []any,
// string-keyed maps become map[string]any. Functions, channels, pointers to
// non-aggregates and other engine handles become nil, as does a reference
// back to an aggregate that is still being converted.
func Normalize(v any) Value {
	return normalize(reflect.ValueOf(v), map[visit]bool{}, 0)
}

// maxDepth bounds recursion for deeply nested values.
const maxDepth = 64

// visit identifies a map, slice or pointer on the current conversion path.
type visit struct {
	kind reflect.Kind
	ptr  uintptr
	len  int
}

func normalize(rv reflect.Value, seen map[visit]bool, depth int) Value {
	if !rv.IsValid() || depth > maxDepth {
		return nil
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		key := visit{kind: rv.Kind(), ptr: rv.Pointer()}
		if rv.Kind() == reflect.Slice {
			key.len = rv.Len()
		}
		// Empty slices may share a backing pointer without aliasing.
		if rv.Kind() != reflect.Slice || key.len > 0 {
			if seen[key] {
				return nil
			}
			seen[key] = true
			defer delete(seen, key)
		}
	}
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem(), seen, depth+1)
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i), seen, depth+1)
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[keyString(iter.Key())] = normalize(iter.Value(), seen, depth+1)
		}
		return out
	default:
		return nil
	}
}

func keyString(k reflect.Value) string {
	for k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	switch k.Kind() {
	case reflect.String:
		return k.String()
	case reflect.Float32, reflect.Float64:
		return FormatNumber(k.Float())
	default:
		return fmt.Sprint(k.Interface())
	}
}

// FormatNumber renders a float without a trailing ".0" for integral values,
// the way script languages print numbers.
func FormatNumber(f float64) string {
	if math.Abs(f) < 1e15 && f == math.Trunc(f) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// Format renders a portable value for display. Map keys are sorted.
func Format(v Value) string {
	var b strings.Builder
	format(&b, v)
	return b.String()
}

func format(b *strings.Builder, v Value) {
	switch x := v.(type) {
	case nil:
		b.WriteString("nil")
	case float64:
		b.WriteString(FormatNumber(x))
	case string:
		fmt.Fprintf(b, "%q", x)
	case bool:
		fmt.Fprintf(b, "%t", x)
	case []any:
		b.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				b.WriteString(", ")
			}
			format(b, item)
		}
		b.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s = ", k)
			format(b, x[k])
		}
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "%v", x)
	}
}
