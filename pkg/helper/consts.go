package helper

import "sync"

// Const is a named value in a ConstSet.
type Const struct {
	Name  string
	Value any
}

// ConstSet is an ordered group of named constants, the registry
// counterpart of a type's constant block.
type ConstSet struct {
	name   string
	consts []Const
	index  map[string]int
}

// NewConstSet creates a set. A repeated name keeps its first position and
// takes the last value.
func NewConstSet(name string, consts ...Const) *ConstSet {
	s := &ConstSet{name: name, index: make(map[string]int, len(consts))}
	for _, c := range consts {
		if i, ok := s.index[c.Name]; ok {
			s.consts[i].Value = c.Value
			continue
		}
		s.index[c.Name] = len(s.consts)
		s.consts = append(s.consts, c)
	}
	return s
}

// Name returns the set's registry name.
func (s *ConstSet) Name() string {
	return s.name
}

// List returns the constants in declaration order.
func (s *ConstSet) List() []Const {
	out := make([]Const, len(s.consts))
	copy(out, s.consts)
	return out
}

// Map returns the constants keyed by name.
func (s *ConstSet) Map() map[string]any {
	out := make(map[string]any, len(s.consts))
	for _, c := range s.consts {
		out[c.Name] = c.Value
	}
	return out
}

// Value returns the constant called name.
func (s *ConstSet) Value(name string) (any, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.consts[i].Value, true
}

// Exists reports whether the set defines name.
func (s *ConstSet) Exists(name string) bool {
	_, ok := s.index[name]
	return ok
}

var constRegistry = struct {
	mu   sync.RWMutex
	sets map[string]*ConstSet
}{sets: make(map[string]*ConstSet)}

// RegisterConsts stores a set under name, replacing any earlier one.
func RegisterConsts(name string, consts ...Const) *ConstSet {
	s := NewConstSet(name, consts...)

	constRegistry.mu.Lock()
	defer constRegistry.mu.Unlock()
	constRegistry.sets[name] = s
	return s
}

// LookupConsts returns the set registered under name.
func LookupConsts(name string) (*ConstSet, bool) {
	constRegistry.mu.RLock()
	defer constRegistry.mu.RUnlock()
	s, ok := constRegistry.sets[name]
	return s, ok
}

// ConstList returns the constants of the named set; ok is false when no
// such set is registered.
func ConstList(set string) ([]Const, bool) {
	s, ok := LookupConsts(set)
	if !ok {
		return nil, false
	}
	return s.List(), true
}

// ConstValue returns a constant of the named set.
func ConstValue(set, name string) (any, bool) {
	s, ok := LookupConsts(set)
	if !ok {
		return nil, false
	}
	return s.Value(name)
}

// ConstExists reports whether the named set defines name.
func ConstExists(set, name string) bool {
	s, ok := LookupConsts(set)
	return ok && s.Exists(name)
}
