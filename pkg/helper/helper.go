package helper

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/myzx/gohelper/pkg/arr"
)

// Tap calls fn with v and returns v.
func Tap[T any](v T, fn func(T)) T {
	if fn != nil {
		fn(v)
	}
	return v
}

// Value returns v, or the result of calling v when it is a function taking
// no arguments and returning one value.
func Value(v any) any {
	if v == nil {
		return nil
	}
	if fn, ok := v.(func() any); ok && fn != nil {
		return fn()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Func && !rv.IsNil() && rv.Type().NumIn() == 0 && rv.Type().NumOut() == 1 {
		return rv.Call(nil)[0].Interface()
	}
	return v
}

// Blank reports whether v is nil, a whitespace-only string, an empty
// collection or a nil pointer. Numbers and booleans are never blank.
func Blank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface, reflect.Func:
		return rv.IsNil()
	case reflect.String:
		return strings.TrimSpace(rv.String()) == ""
	}
	return false
}

// Filled is the inverse of Blank.
func Filled(v any) bool {
	return !Blank(v)
}

// WindowsOS reports whether the program runs on Windows.
func WindowsOS() bool {
	return runtime.GOOS == "windows"
}

// ObjectGet resolves a dot-separated key against exported struct fields
// and string-keyed maps, following pointers. Field names match
// case-insensitively. A missing or nil step yields Value(def); an empty
// key returns obj itself.
func ObjectGet(obj any, key string, def any) any {
	if strings.TrimSpace(key) == "" {
		return obj
	}

	cur := reflect.ValueOf(obj)
	for _, segment := range strings.Split(key, ".") {
		if m, ok := orderedMap(cur); ok {
			v, found := m.Get(segment)
			if !found || v == nil {
				return Value(def)
			}
			cur = reflect.ValueOf(v)
			continue
		}

		cur = indirect(cur)
		if !cur.IsValid() {
			return Value(def)
		}

		var next reflect.Value
		switch cur.Kind() {
		case reflect.Struct:
			next = cur.FieldByNameFunc(func(name string) bool {
				return strings.EqualFold(name, segment)
			})
			if next.IsValid() && !next.CanInterface() {
				next = reflect.Value{}
			}
		case reflect.Map:
			if cur.Type().Key().Kind() != reflect.String {
				return Value(def)
			}
			next = cur.MapIndex(reflect.ValueOf(segment).Convert(cur.Type().Key()))
		}

		if !next.IsValid() || isNil(next) {
			return Value(def)
		}
		cur = next
	}
	return cur.Interface()
}

func orderedMap(v reflect.Value) (*arr.Map, bool) {
	if !v.IsValid() || !v.CanInterface() {
		return nil, false
	}
	m, ok := v.Interface().(*arr.Map)
	return m, ok && m != nil
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// Now returns the current time in the named IANA zone, or local time when
// tz is empty.
func Now(tz string) (time.Time, error) {
	if tz == "" {
		return time.Now(), nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("unknown time zone %q: %w", tz, err)
	}
	return time.Now().In(loc), nil
}
