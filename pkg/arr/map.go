package arr

import (
	"bytes"
	"errors"
	"iter"
	"slices"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
)

// Map is a string-keyed mapping that remembers insertion order. Decoded
// JSON, XML and YAML objects are returned as *Map, and the helpers in this
// package walk a *Map in its key order.
//
// The zero value is ready to use. A Map must not be written concurrently.
type Map struct {
	order  []string
	values map[string]any
}

// Mapping is satisfied by the two mapping shapes the write helpers accept.
type Mapping interface {
	map[string]any | *Map
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// MapOf builds a Map from alternating keys and values. Keys are converted
// the way mapping keys are everywhere else; a trailing key without a value
// maps to nil.
func MapOf(kv ...any) *Map {
	m := NewMap()
	for i := 0; i < len(kv); i += 2 {
		var v any
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		m.Set(toKey(kv[i]), v)
	}
	return m
}

// FromMap copies m into a Map. Keys are added in ascending order with
// integer keys first.
func FromMap(m map[string]any) *Map {
	out := &Map{order: sortedKeys(m), values: make(map[string]any, len(m))}
	for k, v := range m {
		out.values[k] = v
	}
	return out
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores v under key. A new key is appended; an existing key keeps its
// position.
func (m *Map) Set(key string, v any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.order = append(m.order, key)
	}
	m.values[key] = v
}

// Delete removes key.
func (m *Map) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	if i := slices.Index(m.order, key); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return []string{}
	}
	return append(make([]string, 0, len(m.order)), m.order...)
}

// Values returns the values in key order.
func (m *Map) Values() []any {
	if m == nil {
		return nil
	}
	out := make([]any, len(m.order))
	for i, k := range m.order {
		out[i] = m.values[k]
	}
	return out
}

// All iterates the entries in key order.
func (m *Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range m.Keys() {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// ToMap converts m and every Map nested in it to map[string]any.
func (m *Map) ToMap() map[string]any {
	out := make(map[string]any, m.Len())
	if m == nil {
		return out
	}
	for k, v := range m.values {
		out[k] = Plain(v)
	}
	return out
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	out := &Map{order: make([]string, 0, m.Len()), values: make(map[string]any, m.Len())}
	if m == nil {
		return out
	}
	for _, k := range m.order {
		out.order = append(out.order, k)
		out.values[k] = deepCopy(m.values[k])
	}
	return out
}

// MarshalJSON writes the entries as a JSON object in key order.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := sonic.ConfigStd.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := sonic.ConfigStd.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var errNotObject = errors.New("arr: JSON value is not an object")

// UnmarshalJSON replaces m with the object in data, keeping its key order.
// A JSON null leaves m untouched.
func (m *Map) UnmarshalJSON(data []byte) error {
	v, err := ParseJSON(data)
	if err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		return nil
	case *Map:
		*m = *t
		return nil
	}
	return errNotObject
}

// MarshalYAML emits the entries as an ordered YAML mapping.
func (m *Map) MarshalYAML() (any, error) {
	out := make(yaml.MapSlice, 0, m.Len())
	for k, v := range m.All() {
		out = append(out, yaml.MapItem{Key: k, Value: v})
	}
	return out, nil
}

// Plain converts every *Map in v, including inside sequences, to
// map[string]any. Other values are returned as they are.
func Plain(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.ToMap()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = Plain(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Plain(item)
		}
		return out
	}
	return v
}

// mapping is the view of map[string]any and *Map shared by the helpers.
// A plain map lists its keys in ascending order.
type mapping interface {
	get(key string) (any, bool)
	put(key string, v any)
	del(key string)
	keys() []string
	size() int
}

type plainMap map[string]any

func (p plainMap) get(key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

func (p plainMap) put(key string, v any) { p[key] = v }
func (p plainMap) del(key string)        { delete(p, key) }
func (p plainMap) keys() []string        { return sortedKeys(p) }
func (p plainMap) size() int             { return len(p) }

func (m *Map) get(key string) (any, bool) { return m.Get(key) }
func (m *Map) put(key string, v any)      { m.Set(key, v) }
func (m *Map) del(key string)             { m.Delete(key) }
func (m *Map) keys() []string             { return m.Keys() }
func (m *Map) size() int                  { return m.Len() }

// asMapping views v as a mapping. A nil *Map is not one.
func asMapping(v any) (mapping, bool) {
	switch t := v.(type) {
	case map[string]any:
		return plainMap(t), true
	case *Map:
		if t == nil {
			return nil, false
		}
		return t, true
	}
	return nil, false
}

// unwrap returns the value a mapping was made from.
func unwrap(m mapping) any {
	if p, ok := m.(plainMap); ok {
		return map[string]any(p)
	}
	return m
}

// newMapping returns an empty mapping of the ordered or plain kind.
func newMapping(ordered bool) mapping {
	if ordered {
		return NewMap()
	}
	return plainMap(make(map[string]any))
}

func isOrdered(m mapping) bool {
	_, ok := m.(*Map)
	return ok
}

// listMapping re-keys a sequence by its indices.
func listMapping(list []any, ordered bool) mapping {
	if !ordered {
		return plainMap(listToMap(list))
	}
	m := NewMap()
	for i, v := range list {
		m.Set(strconv.Itoa(i), v)
	}
	return m
}

// ensure allocates a nil mapping.
func ensure[M Mapping](m M) M {
	switch t := any(m).(type) {
	case map[string]any:
		if t == nil {
			return any(make(map[string]any)).(M)
		}
	case *Map:
		if t == nil {
			return any(NewMap()).(M)
		}
	}
	return m
}

// emptyLike returns a new empty mapping of the same kind as m.
func emptyLike[M Mapping](m M) M {
	if _, ok := any(m).(*Map); ok {
		return any(NewMap()).(M)
	}
	return any(make(map[string]any)).(M)
}
