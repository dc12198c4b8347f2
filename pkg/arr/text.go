package arr

import (
	"net/url"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Filter removes empty values (nil, "", false, empty containers) and the
// excluded keys from params in place and returns it. Without exclusions the
// signature keys "sign" and "sign_type" are removed.
func Filter(params map[string]any, exclude ...string) map[string]any {
	if len(exclude) == 0 {
		exclude = []string{"sign", "sign_type"}
	}

	for k, v := range params {
		if emptyParam(v) {
			delete(params, k)
		}
	}
	for _, k := range exclude {
		delete(params, k)
	}
	return params
}

func emptyParam(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case *Map:
		return t.Len() == 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() == 0
	}
	return false
}

// In reports whether value is in list, ignoring case.
func In(value string, list []string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}

// Query encodes m as an RFC 3986 query string. Nested containers use
// bracket keys (a[b]=1, list[0]=x), nil values are skipped and bools are
// written as 1 and 0.
func Query[M Mapping](m M) string {
	pairs := queryPairs(m)

	var sb strings.Builder
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(rawEscape(p[0]))
		sb.WriteByte('=')
		sb.WriteString(rawEscape(p[1]))
	}
	return sb.String()
}

// Values converts m to url.Values using the same bracket keys as Query.
func Values[M Mapping](m M) url.Values {
	values := make(url.Values)
	for _, p := range queryPairs(m) {
		values.Add(p[0], p[1])
	}
	return values
}

func rawEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func queryPairs(m any) [][2]string {
	var pairs [][2]string
	var walk func(prefix string, v any)
	walk = func(prefix string, v any) {
		switch t := v.(type) {
		case nil:
			return
		case bool:
			if t {
				pairs = append(pairs, [2]string{prefix, "1"})
			} else {
				pairs = append(pairs, [2]string{prefix, "0"})
			}
			return
		case []any:
			for i, item := range t {
				walk(prefix+"["+strconv.Itoa(i)+"]", item)
			}
			return
		}
		if m, ok := asMapping(v); ok {
			for _, k := range m.keys() {
				item, _ := m.get(k)
				walk(prefix+"["+k+"]", item)
			}
			return
		}
		if values, ok := containerValues(v); ok {
			for i, item := range values {
				walk(prefix+"["+strconv.Itoa(i)+"]", item)
			}
			return
		}
		pairs = append(pairs, [2]string{prefix, toKey(v)})
	}

	if top, ok := asMapping(m); ok {
		for _, k := range top.keys() {
			item, _ := top.get(k)
			walk(k, item)
		}
	}
	return pairs
}

var parseSeparators = regexp.MustCompile(`[,;\r\n]+`)

// ParseList splits s on commas, semicolons and line breaks.
func ParseList(s string) []string {
	s = strings.Trim(s, ",;\r\n")
	if s == "" {
		return []string{}
	}
	return parseSeparators.Split(s, -1)
}

// Parse reads "key:value" items separated by commas, semicolons or line
// breaks. Items without a key are stored under the next integer key.
func Parse(s string) map[string]string {
	result := make(map[string]string)
	next := 0

	for _, item := range ParseList(s) {
		key, value, found := strings.Cut(item, ":")
		if !found || key == "" {
			result[strconv.Itoa(next)] = item
			next++
			continue
		}
		result[key] = value
		if n, ok := intKey(key); ok && n >= next {
			next = n + 1
		}
	}
	return result
}

// ToString renders a mapping as "key:value" lines and a sequence as one
// item per line.
func ToString(v any) string {
	if m, ok := asMapping(v); ok && IsAssoc(v) {
		var sb strings.Builder
		for _, k := range m.keys() {
			item, _ := m.get(k)
			sb.WriteString(k)
			sb.WriteByte(':')
			sb.WriteString(toKey(item))
			sb.WriteByte('\n')
		}
		return sb.String()
	}

	values, _ := containerValues(v)
	lines := make([]string, len(values))
	for i, item := range values {
		lines[i] = toKey(item)
	}
	return strings.Join(lines, "\n")
}

// TransformKeys returns a copy of m with keys renamed by keyMap. Renames are
// applied together, so {"a": "b", "b": "a"} swaps two keys. A renamed key
// wins over an untouched key of the same name.
func TransformKeys(m map[string]any, keyMap map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if _, renamed := keyMap[k]; !renamed {
			out[k] = v
		}
	}
	for oldKey, newKey := range keyMap {
		if v, ok := m[oldKey]; ok {
			out[newKey] = v
		}
	}
	return out
}

// TransformKeysFunc returns a copy of m with every entry rewritten by fn.
func TransformKeysFunc(m map[string]any, fn func(key string, value any) (string, any)) map[string]any {
	out := make(map[string]any, len(m))
	for _, k := range sortedKeys(m) {
		nk, nv := fn(k, m[k])
		out[nk] = nv
	}
	return out
}

// MergeDefault returns the keys of def, taking values from data where
// present. Keys in data that def lacks are dropped.
func MergeDefault(def, data map[string]any) map[string]any {
	out := make(map[string]any, len(def))
	for k, v := range def {
		if dv, ok := data[k]; ok {
			out[k] = dv
		} else {
			out[k] = v
		}
	}
	return out
}

// Keys returns the keys of m: insertion order for a *Map, otherwise
// ascending with integers first.
func Keys[M Mapping](m M) []string {
	src, ok := asMapping(m)
	if !ok {
		return []string{}
	}
	return src.keys()
}

// Sort returns a sorted copy of list. Numbers sort numerically before
// strings, which sort lexically; other values keep their relative order at
// the end.
func Sort(list []any) []any {
	out := make([]any, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return lessValue(out[i], out[j])
	})
	return out
}

// SortRecursive sorts every sequence nested in v. Mappings are walked and
// keep their key order.
func SortRecursive(v any) any {
	switch t := v.(type) {
	case *Map:
		out := NewMap()
		for k, item := range t.All() {
			out.Set(k, SortRecursive(item))
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = SortRecursive(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = SortRecursive(item)
		}
		return Sort(out)
	}
	return v
}

func lessValue(a, b any) bool {
	ra, rb := sortRank(a), sortRank(b)
	if ra != rb {
		return ra < rb
	}
	if ra == 2 {
		return false
	}
	cmp, ok := compareValues(a, b)
	return ok && cmp < 0
}

func sortRank(v any) int {
	if isNumber(v) {
		return 0
	}
	if _, ok := v.(string); ok {
		return 1
	}
	return 2
}
