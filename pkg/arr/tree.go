package arr

import "strconv"

// TreeOptions names the fields Tree reads and writes.
type TreeOptions struct {
	ID     string // default "id"
	Parent string // default "pid"
	Child  string // default "child"

	// WithUnknown appends nodes whose parent was never found as extra
	// top-level nodes.
	WithUnknown bool
}

func (o TreeOptions) withDefaults() TreeOptions {
	if o.ID == "" {
		o.ID = "id"
	}
	if o.Parent == "" {
		o.Parent = "pid"
	}
	if o.Child == "" {
		o.Child = "child"
	}
	return o
}

// TreeHandler inspects or edits a node before its children are collected.
// Returning false drops the node from the result; its children are still
// consumed.
type TreeHandler func(level int, node map[string]any) bool

// Tree nests a flat list of nodes under their parents, starting with the
// nodes whose parent field loosely equals pid. Levels start at 1. Children
// are stored under the child field only when there are any. Input nodes are
// copied, never modified.
func Tree(list []map[string]any, handler TreeHandler, pid any, opts ...TreeOptions) []map[string]any {
	var o TreeOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	b := &treeBuilder{
		list:     list,
		consumed: make([]bool, len(list)),
		handler:  handler,
		opts:     o.withDefaults(),
	}

	result := b.build(pid, 1)

	if b.opts.WithUnknown {
		for i, node := range list {
			if b.consumed[i] {
				continue
			}
			n := cloneNode(node)
			if handler != nil {
				handler(1, n)
			}
			result = append(result, n)
		}
	}

	if result == nil {
		return []map[string]any{}
	}
	return result
}

type treeBuilder struct {
	list     []map[string]any
	consumed []bool
	handler  TreeHandler
	opts     TreeOptions
}

func (b *treeBuilder) build(pid any, level int) []map[string]any {
	var result []map[string]any

	for i, node := range b.list {
		if b.consumed[i] || !LooseEqual(node[b.opts.Parent], pid) {
			continue
		}
		b.consumed[i] = true

		n := cloneNode(node)
		keep := b.handler == nil || b.handler(level, n)

		if children := b.build(n[b.opts.ID], level+1); len(children) > 0 {
			n[b.opts.Child] = children
		}
		if keep {
			result = append(result, n)
		}
	}

	return result
}

func cloneNode(node map[string]any) map[string]any {
	n := make(map[string]any, len(node)+1)
	for k, v := range node {
		n[k] = v
	}
	return n
}

// TreeToList flattens a tree in pre-order, dropping the child field from
// every node. childKey defaults to "child".
func TreeToList(tree []map[string]any, childKey string) []map[string]any {
	if childKey == "" {
		childKey = "child"
	}

	result := make([]map[string]any, 0, len(tree))
	var walk func(nodes []map[string]any)
	walk = func(nodes []map[string]any) {
		for _, node := range nodes {
			n := cloneNode(node)
			children, hasChildren := n[childKey]
			delete(n, childKey)
			result = append(result, n)
			if hasChildren {
				walk(Rows(children))
			}
		}
	}
	walk(tree)

	return result
}

// Rows converts a decoded sequence of mappings to []map[string]any, skipping
// items that are not mappings. *Map rows are converted with ToMap.
func Rows(v any) []map[string]any {
	switch list := v.(type) {
	case []map[string]any:
		return list
	case []any:
		rows := make([]map[string]any, 0, len(list))
		for _, item := range list {
			switch row := item.(type) {
			case map[string]any:
				rows = append(rows, row)
			case *Map:
				rows = append(rows, row.ToMap())
			}
		}
		return rows
	}
	return nil
}

// UniqueMulti keeps the first row for each distinct value of key.
func UniqueMulti(rows []map[string]any, key string) []map[string]any {
	result := make([]map[string]any, 0, len(rows))
	seen := make([]any, 0, len(rows))

outer:
	for _, row := range rows {
		v := row[key]
		for _, s := range seen {
			if LooseEqual(s, v) {
				continue outer
			}
		}
		seen = append(seen, v)
		result = append(result, row)
	}

	return result
}

// Column extracts one field from every row that has it. An empty column
// returns the rows themselves.
func Column(rows []map[string]any, column string) []any {
	result := make([]any, 0, len(rows))
	for _, row := range rows {
		if v, ok := columnValue(row, column); ok {
			result = append(result, v)
		}
	}
	return result
}

// ColumnBy extracts one field from every row that has it, keyed by the
// string form of the row's indexKey field. Rows without indexKey take the
// next free integer key.
func ColumnBy(rows []map[string]any, column, indexKey string) map[string]any {
	result := make(map[string]any, len(rows))
	next := 0

	for _, row := range rows {
		v, ok := columnValue(row, column)
		if !ok {
			continue
		}

		idx, hasIndex := row[indexKey]
		key := strconv.Itoa(next)
		if hasIndex {
			key = toKey(idx)
		}
		result[key] = v

		if n, ok := intKey(key); ok && n >= next {
			next = n + 1
		}
	}

	return result
}

func columnValue(row map[string]any, column string) (any, bool) {
	if column == "" {
		return row, true
	}
	v, ok := row[column]
	return v, ok
}
