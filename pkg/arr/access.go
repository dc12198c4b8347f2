package arr

import (
	"reflect"
	"strconv"
	"strings"
)

// Value returns v, calling it first when it is a func() any. Defaults passed
// to Get and friends go through Value so they can be computed lazily.
func Value(v any) any {
	if fn, ok := v.(func() any); ok {
		return fn()
	}
	return v
}

// Accessible reports whether v can be indexed by a path segment.
func Accessible(v any) bool {
	switch t := v.(type) {
	case map[string]any, []any:
		return true
	case *Map:
		return t != nil
	case nil, string, []byte:
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return rv.Type().Key().Kind() == reflect.String
	case reflect.Slice, reflect.Array:
		return !isBytes(rv)
	}
	return false
}

// IsAssoc reports whether v is a mapping whose keys are not exactly 0..n-1.
func IsAssoc(v any) bool {
	m, ok := asMapping(v)
	if !ok {
		if !Accessible(v) {
			return false
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Map {
			return false
		}
		keys := make(plainMap, rv.Len())
		for _, k := range rv.MapKeys() {
			keys[k.String()] = nil
		}
		m = keys
	}

	for i := 0; i < m.size(); i++ {
		if _, ok := m.get(strconv.Itoa(i)); !ok {
			return true
		}
	}
	return false
}

// Exists reports whether key is present at the top level of container. It
// never splits key on dots.
func Exists(container any, key string) bool {
	_, ok := lookup(container, key)
	return ok
}

// Get reads a value by dot path.
//
// An empty path returns container itself. A key equal to the whole path wins
// over segment traversal. Anything unresolvable returns Value(def).
func Get(container any, path string, def any) any {
	if !Accessible(container) {
		return Value(def)
	}
	if path == "" {
		return container
	}
	if v, ok := lookup(container, path); ok {
		return v
	}
	if !strings.Contains(path, ".") {
		return Value(def)
	}

	cur := container
	for _, seg := range strings.Split(path, ".") {
		v, ok := lookup(cur, seg)
		if !ok {
			return Value(def)
		}
		cur = v
	}
	return cur
}

// Has reports whether every key resolves. It returns false for an empty key
// list and for a nil or empty container.
func Has(container any, keys ...string) bool {
	if len(keys) == 0 || !filledContainer(container) {
		return false
	}

	for _, key := range keys {
		if Exists(container, key) {
			continue
		}

		cur := container
		for _, seg := range strings.Split(key, ".") {
			v, ok := lookup(cur, seg)
			if !ok {
				return false
			}
			cur = v
		}
	}
	return true
}

func filledContainer(v any) bool {
	if m, ok := v.(*Map); ok {
		return m.Len() > 0
	}
	if !Accessible(v) {
		return false
	}
	return reflect.ValueOf(v).Len() > 0
}

// Set writes value at path, creating intermediate mappings as needed, and
// returns m (allocated when nil). Mappings created below a *Map are *Map
// too.
//
// When the existing and new values are both mappings the new keys are merged
// into the existing mapping; when both are sequences the new items are
// appended. Any other value is overwritten. An empty path leaves m untouched.
func Set[M Mapping](m M, path string, value any) M {
	m = ensure(m)
	if path == "" {
		return m
	}

	target, _ := asMapping(m)
	setMap(target, strings.Split(path, "."), value)
	return m
}

func setMap(m mapping, segs []string, value any) {
	key := segs[0]
	cur, _ := m.get(key)
	if len(segs) == 1 {
		m.put(key, mergeValue(cur, value))
		return
	}
	m.put(key, setChild(cur, segs[1:], value, isOrdered(m)))
}

// setChild descends into node. A sequence accepts an existing index or the
// next index; any other segment turns it into an index-keyed mapping.
// Non-container nodes are replaced by a fresh mapping.
func setChild(node any, segs []string, value any, ordered bool) any {
	if m, ok := asMapping(node); ok {
		setMap(m, segs, value)
		return node
	}

	if n, ok := node.([]any); ok {
		idx, ok := intKey(segs[0])
		if ok && idx >= 0 && idx <= len(n) {
			if idx == len(n) {
				n = append(n, nil)
			}
			if len(segs) == 1 {
				n[idx] = mergeValue(n[idx], value)
			} else {
				n[idx] = setChild(n[idx], segs[1:], value, ordered)
			}
			return n
		}
		m := listMapping(n, ordered)
		setMap(m, segs, value)
		return unwrap(m)
	}

	m := newMapping(ordered)
	setMap(m, segs, value)
	return unwrap(m)
}

func mergeValue(existing, value any) any {
	if cur, ok := asMapping(existing); ok {
		if add, ok := asMapping(value); ok {
			for _, k := range add.keys() {
				v, _ := add.get(k)
				cur.put(k, v)
			}
			return existing
		}
	}
	if cur, ok := existing.([]any); ok {
		if add, ok := value.([]any); ok {
			return append(cur, add...)
		}
	}
	return value
}

// Forget removes each key from m. A literal top-level key is removed
// directly; otherwise the path is walked and silently skipped when an
// intermediate segment is missing or not a container. Removing an element
// from a sequence shifts the following elements down.
func Forget[M Mapping](m M, keys ...string) {
	target, ok := asMapping(m)
	if !ok {
		return
	}
	for _, key := range keys {
		if _, ok := target.get(key); ok {
			target.del(key)
			continue
		}
		forgetIn(m, strings.Split(key, "."))
	}
}

func forgetIn(node any, segs []string) any {
	if m, ok := asMapping(node); ok {
		if len(segs) == 1 {
			m.del(segs[0])
			return node
		}
		if child, ok := m.get(segs[0]); ok && child != nil {
			m.put(segs[0], forgetIn(child, segs[1:]))
		}
		return node
	}

	if n, ok := node.([]any); ok {
		idx, ok := sliceIndex(len(n), segs[0])
		if !ok {
			return n
		}
		if len(segs) == 1 {
			return append(n[:idx:idx], n[idx+1:]...)
		}
		if n[idx] != nil {
			n[idx] = forgetIn(n[idx], segs[1:])
		}
		return n
	}
	return node
}

// Add sets path to value only when it is absent or nil.
func Add[M Mapping](m M, path string, value any) M {
	if Get(m, path, nil) == nil {
		return Set(m, path, value)
	}
	return m
}

// Except returns a deep copy of m without the given keys.
func Except[M Mapping](m M, keys ...string) M {
	out := ensure(deepCopy(m).(M))
	Forget(out, keys...)
	return out
}

// Only returns the top-level entries of m named by keys. A *Map keeps its
// own key order.
func Only[M Mapping](m M, keys ...string) M {
	out := emptyLike(m)
	src, ok := asMapping(m)
	if !ok {
		return out
	}

	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	dst, _ := asMapping(out)
	for _, k := range src.keys() {
		if want[k] {
			v, _ := src.get(k)
			dst.put(k, v)
		}
	}
	return out
}

// Pull returns the value at path and removes it from m.
func Pull[M Mapping](m M, path string, def any) any {
	v := Get(m, path, def)
	Forget(m, path)
	return v
}

// Wrap returns v as a sequence: nil becomes empty, sequences pass through.
func Wrap(v any) []any {
	if v == nil {
		return []any{}
	}
	if list, ok := v.([]any); ok {
		return list
	}
	return []any{v}
}

// Dot flattens nested containers into one mapping with dotted keys. Empty
// containers are kept as leaves. A *Map yields a *Map in walk order.
func Dot[M Mapping](m M, prepend string) M {
	out := emptyLike(m)
	dst, _ := asMapping(out)
	dotInto(dst, m, prepend)
	return out
}

func dotInto(out mapping, v any, prefix string) {
	if m, ok := asMapping(v); ok {
		for _, k := range m.keys() {
			item, _ := m.get(k)
			dotValue(out, item, prefix+k)
		}
		return
	}
	if list, ok := v.([]any); ok {
		for i, item := range list {
			dotValue(out, item, prefix+strconv.Itoa(i))
		}
	}
}

func dotValue(out mapping, item any, key string) {
	if m, ok := asMapping(item); ok && m.size() > 0 {
		dotInto(out, item, key+".")
		return
	}
	if list, ok := item.([]any); ok && len(list) > 0 {
		dotInto(out, item, key+".")
		return
	}
	out.put(key, item)
}
