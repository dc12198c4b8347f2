package arr

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// Flatten collapses nested containers into a single sequence. depth limits
// how many levels are unwrapped; depth <= 0 flattens completely. At depth 1
// the values of each nested container are taken as they are.
func Flatten(list []any, depth int) []any {
	result := make([]any, 0, len(list))
	for _, item := range list {
		values, ok := containerValues(item)
		if !ok {
			result = append(result, item)
			continue
		}
		if depth == 1 {
			result = append(result, values...)
		} else {
			result = append(result, Flatten(values, depth-1)...)
		}
	}
	return result
}

// CrossJoin returns every combination of one item from each list, iterating
// the first list slowest.
func CrossJoin(lists ...[]any) [][]any {
	results := [][]any{{}}

	for idx, list := range lists {
		next := make([][]any, 0, len(results)*len(list))
		for _, product := range results {
			for _, item := range list {
				combo := make([]any, idx+1)
				copy(combo, product)
				combo[idx] = item
				next = append(next, combo)
			}
		}
		results = next
	}

	return results
}

// Divide splits m into its keys and the matching values.
func Divide[M Mapping](m M) ([]string, []any) {
	src, ok := asMapping(m)
	if !ok {
		return []string{}, []any{}
	}
	keys := src.keys()
	values := make([]any, len(keys))
	for i, k := range keys {
		values[i], _ = src.get(k)
	}
	return keys, values
}

// First returns the first item accepted by fn, or Value(def). A nil fn
// accepts everything.
func First(list []any, fn func(v any, i int) bool, def any) any {
	for i, v := range list {
		if fn == nil || fn(v, i) {
			return v
		}
	}
	return Value(def)
}

// Last returns the last item accepted by fn, or Value(def).
func Last(list []any, fn func(v any, i int) bool, def any) any {
	for i := len(list) - 1; i >= 0; i-- {
		if fn == nil || fn(list[i], i) {
			return list[i]
		}
	}
	return Value(def)
}

// Every reports whether fn accepts every item.
func Every(list []any, fn func(v any, i int) bool) bool {
	for i, v := range list {
		if !fn(v, i) {
			return false
		}
	}
	return true
}

// Prepend returns a new sequence with v in front of list.
func Prepend(list []any, v any) []any {
	out := make([]any, 0, len(list)+1)
	out = append(out, v)
	return append(out, list...)
}

// Random picks n distinct items, keeping their original relative order.
func Random(list []any, n int) ([]any, error) {
	if n < 0 || n > len(list) {
		return nil, fmt.Errorf("%w: you requested %d items, but there are only %d items available",
			ErrInvalidArgument, n, len(list))
	}
	if n == 0 {
		return []any{}, nil
	}

	picked := rand.Perm(len(list))[:n]
	sort.Ints(picked)

	out := make([]any, n)
	for i, idx := range picked {
		out[i] = list[idx]
	}
	return out, nil
}

// RandomItem picks one item.
func RandomItem(list []any) (any, error) {
	items, err := Random(list, 1)
	if err != nil {
		return nil, err
	}
	return items[0], nil
}

// Shuffle returns a shuffled copy of list. Passing a seed makes the order
// reproducible.
func Shuffle(list []any, seed ...uint64) []any {
	out := make([]any, len(list))
	copy(out, list)

	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
	if len(seed) > 0 {
		rand.New(rand.NewPCG(seed[0], 0)).Shuffle(len(out), swap)
	} else {
		rand.Shuffle(len(out), swap)
	}
	return out
}

// Uncombine splits rows into one sequence per key. Without keys, the keys of
// the first row are used. Missing fields become nil.
func Uncombine(rows []map[string]any, keys ...string) [][]any {
	if len(keys) == 0 && len(rows) > 0 {
		keys = sortedKeys(rows[0])
	}

	result := make([][]any, len(keys))
	for i := range result {
		result[i] = make([]any, 0, len(rows))
	}
	for _, row := range rows {
		for i, key := range keys {
			result[i] = append(result[i], row[key])
		}
	}
	return result
}
