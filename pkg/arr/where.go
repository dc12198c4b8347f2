package arr

import (
	"reflect"
	"strings"
)

// Condition is one field test used by Where.
type Condition struct {
	Field    string
	Operator string
	Value    any
}

// Where reports whether row satisfies all conditions, or any of them when
// matchAny is true. Fields are read with Get, so dot paths work.
//
// Operators: = == === != <> !== > >= < <= like, not like, in, not in,
// between, not between. Unknown operators compare with loose equality.
// between takes either a two element sequence or a "min,max" string.
func Where(row any, conds []Condition, matchAny bool) bool {
	for _, c := range conds {
		ok := matchCondition(Get(row, c.Field, nil), c)
		if matchAny && ok {
			return true
		}
		if !matchAny && !ok {
			return false
		}
	}
	return !matchAny
}

// WhereEq reports whether every field in fields loosely equals the row's
// value at that path.
func WhereEq(row any, fields map[string]any) bool {
	conds := make([]Condition, 0, len(fields))
	for _, k := range sortedKeys(fields) {
		conds = append(conds, Condition{Field: k, Operator: "=", Value: fields[k]})
	}
	return Where(row, conds, false)
}

func matchCondition(result any, c Condition) bool {
	switch strings.ToLower(c.Operator) {
	case "===":
		return reflect.DeepEqual(result, c.Value)
	case "!==":
		return !reflect.DeepEqual(result, c.Value)
	case "!=", "<>":
		return !LooseEqual(result, c.Value)
	case ">":
		cmp, ok := compareValues(result, c.Value)
		return ok && cmp > 0
	case ">=":
		cmp, ok := compareValues(result, c.Value)
		return ok && cmp >= 0
	case "<":
		cmp, ok := compareValues(result, c.Value)
		return ok && cmp < 0
	case "<=":
		cmp, ok := compareValues(result, c.Value)
		return ok && cmp <= 0
	case "like":
		s, ok := result.(string)
		return ok && strings.Contains(s, toKey(c.Value))
	case "not like":
		s, ok := result.(string)
		return ok && !strings.Contains(s, toKey(c.Value))
	case "in":
		return isScalar(result) && containsStrict(c.Value, result)
	case "not in":
		return isScalar(result) && !containsStrict(c.Value, result)
	case "between":
		lo, hi, ok := bounds(c.Value)
		if !ok || !isScalar(result) {
			return false
		}
		a, aok := compareValues(result, lo)
		b, bok := compareValues(result, hi)
		return aok && bok && a >= 0 && b <= 0
	case "not between":
		lo, hi, ok := bounds(c.Value)
		if !ok || !isScalar(result) {
			return false
		}
		a, aok := compareValues(result, lo)
		b, bok := compareValues(result, hi)
		return (aok && a < 0) || (bok && b > 0)
	}
	return LooseEqual(result, c.Value)
}

func containsStrict(list, v any) bool {
	values, ok := containerValues(list)
	if !ok {
		return false
	}
	for _, item := range values {
		if reflect.DeepEqual(item, v) {
			return true
		}
	}
	return false
}

func bounds(v any) (any, any, bool) {
	if s, ok := v.(string); ok {
		parts := strings.SplitN(s, ",", 2)
		if len(parts) != 2 {
			return nil, nil, false
		}
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
	}

	values, ok := containerValues(v)
	if !ok || len(values) < 2 {
		return nil, nil, false
	}
	return values[0], values[1], true
}
