// Package arr manipulates loosely typed nested data: the *Map, map[string]any
// and []any shapes produced by JSON, YAML and XML decoding.
//
// Dot paths address nested values segment by segment ("user.tags.0"). A key
// that literally contains dots is matched first, so Get(m, "a.b", nil) returns
// m["a.b"] when that key exists and only then walks m["a"]["b"]. There is no
// escape syntax for literal dots inside a segment.
//
// Reads accept any string-keyed map or slice through reflection. Writes
// (Set, Forget, Add, Pull) only descend through *Map, map[string]any and
// []any and mutate the value passed in.
//
// A *Map keeps insertion order, and everything that iterates it (Flatten,
// Dot, Divide, Query, ToString, Keys) follows that order. Plain Go maps carry
// no order, so they are visited in ascending key order with integer keys
// compared numerically.
package arr
