package arr

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
)

// ParseJSON decodes data into the loosely typed shapes this package works
// on: objects become *Map in document order, arrays []any, numbers float64.
func ParseJSON(data []byte) (any, error) {
	if !sonic.ConfigStd.Valid(data) {
		var v any
		if err := sonic.ConfigStd.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("arr: invalid JSON")
	}

	root, err := sonic.Get(data)
	if err != nil {
		return nil, err
	}
	return fromNode(&root)
}

func fromNode(n *ast.Node) (any, error) {
	switch n.TypeSafe() {
	case ast.V_NULL:
		return nil, nil
	case ast.V_TRUE:
		return true, nil
	case ast.V_FALSE:
		return false, nil
	case ast.V_STRING:
		return n.String()
	case ast.V_NUMBER:
		return n.Float64()
	case ast.V_ARRAY:
		it, err := n.Values()
		if err != nil {
			return nil, err
		}
		out := []any{}
		var child ast.Node
		for it.Next(&child) {
			v, err := fromNode(&child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case ast.V_OBJECT:
		it, err := n.Properties()
		if err != nil {
			return nil, err
		}
		out := NewMap()
		var pair ast.Pair
		for it.Next(&pair) {
			v, err := fromNode(&pair.Value)
			if err != nil {
				return nil, err
			}
			out.Set(pair.Key, v)
		}
		return out, nil
	}
	if err := n.Check(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("arr: unexpected JSON value of type %d", n.TypeSafe())
}
