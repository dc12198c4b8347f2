package arr

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// lookup returns container[key] for maps and the element at a decimal index
// for slices.
func lookup(container any, key string) (any, bool) {
	switch c := container.(type) {
	case map[string]any:
		v, ok := c[key]
		return v, ok
	case *Map:
		return c.Get(key)
	case []any:
		idx, ok := sliceIndex(len(c), key)
		if !ok {
			return nil, false
		}
		return c[idx], true
	case nil:
		return nil, false
	}

	rv := reflect.ValueOf(container)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Slice, reflect.Array:
		if isBytes(rv) {
			return nil, false
		}
		idx, ok := sliceIndex(rv.Len(), key)
		if !ok {
			return nil, false
		}
		return rv.Index(idx).Interface(), true
	}

	return nil, false
}

// sliceIndex parses key as an index into a sequence of length n.
func sliceIndex(n int, key string) (int, bool) {
	idx, ok := intKey(key)
	if !ok || idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}

// intKey reports whether key is a canonical decimal integer ("0", "12", "-3").
func intKey(key string) (int, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || strconv.Itoa(n) != key {
		return 0, false
	}
	return n, true
}

func isBytes(rv reflect.Value) bool {
	return rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8
}

// containerValues returns the values of a sequence in order, or of a mapping
// in key order.
func containerValues(v any) ([]any, bool) {
	switch c := v.(type) {
	case []any:
		return c, true
	case *Map:
		return c.Values(), true
	case map[string]any:
		keys := sortedKeys(c)
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = c[k]
		}
		return out, true
	case nil, string, []byte:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if isBytes(rv) {
			return nil, false
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sortKeys(keys)
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()
		}
		return out, true
	}

	return nil, false
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

// sortKeys orders integer keys numerically ahead of other keys, which are
// ordered lexically.
func sortKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		a, aok := intKey(keys[i])
		b, bok := intKey(keys[j])
		switch {
		case aok && bok:
			return a < b
		case aok != bok:
			return aok
		}
		return keys[i] < keys[j]
	})
}

// listToMap re-keys a sequence by its indices.
func listToMap(list []any) map[string]any {
	m := make(map[string]any, len(list))
	for i, v := range list {
		m[strconv.Itoa(i)] = v
	}
	return m
}

// deepCopy clones nested mappings and []any values.
func deepCopy(v any) any {
	switch c := v.(type) {
	case *Map:
		return c.Clone()
	case map[string]any:
		out := make(map[string]any, len(c))
		for k, item := range c {
			out[k] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(c))
		for i, item := range c {
			out[i] = deepCopy(item)
		}
		return out
	}
	return v
}

// toFloat converts numbers and numeric strings.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		return numericString(n)
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func numericString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isNumber(v any) bool {
	if _, ok := v.(string); ok {
		return false
	}
	_, ok := toFloat(v)
	return ok
}

// isScalar reports whether v is a number, string or bool.
func isScalar(v any) bool {
	switch v.(type) {
	case string, bool:
		return true
	}
	return isNumber(v)
}

// toKey converts a value to the string form used for mapping keys:
// true becomes "1", false and nil become "", whole floats lose their
// fraction.
func toKey(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "1"
		}
		return ""
	case float32:
		return formatFloat(float64(t))
	case float64:
		return formatFloat(t)
	}
	if f, ok := toFloat(v); ok {
		if _, isStr := v.(string); !isStr {
			return formatFloat(f)
		}
	}
	return toString(v)
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func toString(v any) string {
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.String:
		return rv.String()
	}
	return fmt.Sprint(v)
}

// truthy follows the usual scripting rules for boolean conversion.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && t != "0"
	}
	if f, ok := toFloat(v); ok {
		return f != 0
	}
	if values, ok := containerValues(v); ok {
		return len(values) > 0
	}
	return true
}

// LooseEqual compares two values the way the dot-path helpers match ids and
// conditions: 1, 1.0 and "1" are equal, nil equals any zero value, and bools
// compare by truthiness.
func LooseEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}

	if ab, ok := a.(bool); ok {
		return ab == truthy(b)
	}
	if bb, ok := b.(bool); ok {
		return bb == truthy(a)
	}

	if a == nil || b == nil {
		other := a
		if a == nil {
			other = b
		}
		return !truthy(other) && !isZeroString(other)
	}

	as, aStr := a.(string)
	bs, bStr := b.(string)
	if aStr && bStr {
		if af, ok := numericString(as); ok {
			if bf, ok := numericString(bs); ok {
				return af == bf
			}
		}
		return as == bs
	}

	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	if aStr || bStr {
		return toKey(a) == toKey(b)
	}

	return reflect.DeepEqual(a, b)
}

// isZeroString reports the "0" string, which is falsy but not equal to nil.
func isZeroString(v any) bool {
	s, ok := v.(string)
	return ok && s == "0"
}

// compareValues orders two values numerically when both are numeric and
// lexically when both are strings.
func compareValues(a, b any) (int, bool) {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		}
		return 0, true
	}

	as, aStr := a.(string)
	bs, bStr := b.(string)
	if aStr && bStr {
		return strings.Compare(as, bs), true
	}

	return 0, false
}
