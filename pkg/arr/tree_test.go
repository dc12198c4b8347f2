package arr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatNodes() []map[string]any {
	return []map[string]any{
		{"id": 1, "pid": 0, "name": "root"},
		{"id": 2, "pid": 1, "name": "a"},
		{"id": 3, "pid": 1, "name": "b"},
		{"id": 4, "pid": 2, "name": "a1"},
	}
}

func ids(nodes []map[string]any) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = n["id"]
	}
	return out
}

func TestTreeBasic(t *testing.T) {
	list := []map[string]any{
		{"id": 1, "pid": 0},
		{"id": 2, "pid": 1},
		{"id": 3, "pid": 1},
	}

	tree := Tree(list, nil, 0)
	require.Len(t, tree, 1)
	assert.Equal(t, 1, tree[0]["id"])

	children, ok := tree[0]["child"].([]map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{2, 3}, ids(children))
	assert.NotContains(t, children[0], "child", "leaf nodes get no child field")
}

func TestTreeDoesNotMutateInput(t *testing.T) {
	list := flatNodes()
	Tree(list, func(level int, node map[string]any) bool {
		node["level"] = level
		return true
	}, 0)

	for _, n := range list {
		assert.NotContains(t, n, "level")
		assert.NotContains(t, n, "child")
	}
}

func TestTreeHandlerLevelsAndVeto(t *testing.T) {
	levels := map[any]int{}
	tree := Tree(flatNodes(), func(level int, node map[string]any) bool {
		levels[node["id"]] = level
		return node["name"] != "a"
	}, 0)

	assert.Equal(t, map[any]int{1: 1, 2: 2, 3: 2, 4: 3}, levels)

	require.Len(t, tree, 1)
	children := tree[0]["child"].([]map[string]any)
	assert.Equal(t, []any{3}, ids(children), "vetoed node is dropped with its subtree")

	list := TreeToList(tree, "")
	assert.Equal(t, []any{1, 3}, ids(list))
}

func TestTreeLooseParentMatch(t *testing.T) {
	list := []map[string]any{
		{"id": "1", "pid": "0"},
		{"id": 2, "pid": 1.0},
		{"id": 3},
	}

	tree := Tree(list, nil, 0)
	assert.Equal(t, []any{"1", 3}, ids(tree), "missing parent matches a zero root")
	assert.Equal(t, []any{2}, ids(tree[0]["child"].([]map[string]any)))
}

func TestTreeWithUnknown(t *testing.T) {
	list := append(flatNodes(), map[string]any{"id": 9, "pid": 99, "name": "orphan"})

	tree := Tree(list, nil, 0)
	assert.Equal(t, []any{1}, ids(tree))

	var orphanLevel int
	tree = Tree(list, func(level int, node map[string]any) bool {
		if node["id"] == 9 {
			orphanLevel = level
		}
		return true
	}, 0, TreeOptions{WithUnknown: true})
	assert.Equal(t, []any{1, 9}, ids(tree))
	assert.Equal(t, 1, orphanLevel)
}

func TestTreeCustomKeys(t *testing.T) {
	list := []map[string]any{
		{"code": "a", "parent": ""},
		{"code": "b", "parent": "a"},
	}

	tree := Tree(list, nil, "", TreeOptions{ID: "code", Parent: "parent", Child: "items"})
	require.Len(t, tree, 1)
	assert.Len(t, tree[0]["items"], 1)
}

func TestTreeCycleTerminates(t *testing.T) {
	list := []map[string]any{
		{"id": 1, "pid": 0},
		{"id": 2, "pid": 2},
	}

	tree := Tree(list, nil, 0, TreeOptions{WithUnknown: true})
	assert.Equal(t, []any{1, 2}, ids(tree))
}

func TestTreeToListRestoresNodes(t *testing.T) {
	list := flatNodes()

	got := TreeToList(Tree(list, nil, 0), "child")

	assert.Equal(t, []any{1, 2, 4, 3}, ids(got), "pre-order")
	assert.ElementsMatch(t, list, got)
}

func TestTreeToListDecodedChildren(t *testing.T) {
	tree := []map[string]any{
		{"id": 1, "child": []any{
			map[string]any{"id": 2},
		}},
	}

	assert.Equal(t, []map[string]any{{"id": 1}, {"id": 2}}, TreeToList(tree, "child"))
}

func TestUniqueMulti(t *testing.T) {
	rows := []map[string]any{
		{"id": 1, "v": "a"},
		{"id": "1", "v": "b"},
		{"id": 2, "v": "c"},
		{"v": "d"},
		{"v": "e"},
	}

	got := UniqueMulti(rows, "id")
	assert.Equal(t, []any{"a", "c", "d"}, Column(got, "v"))
}

func TestColumn(t *testing.T) {
	rows := []map[string]any{
		{"id": 1, "v": "a"},
		{"id": 2, "v": "b"},
		{"id": 3},
	}

	assert.Equal(t, []any{"a", "b"}, Column(rows, "v"))
	assert.Len(t, Column(rows, ""), 3)
	assert.Equal(t, map[string]any{"1": "a", "2": "b"}, ColumnBy(rows, "v", "id"))
}

func TestColumnByKeys(t *testing.T) {
	rows := []map[string]any{
		{"k": 5, "v": "a"},
		{"v": "b"},
		{"k": 2.0, "v": "c"},
		{"k": true, "v": "d"},
		{"k": "x", "v": "e"},
		{"v": "f"},
	}

	assert.Equal(t, map[string]any{
		"5": "a",
		"6": "b",
		"2": "c",
		"1": "d",
		"x": "e",
		"7": "f",
	}, ColumnBy(rows, "v", "k"))
}

func TestRows(t *testing.T) {
	decoded := []any{map[string]any{"id": 1}, "skip", map[string]any{"id": 2}}
	assert.Len(t, Rows(decoded), 2)
	assert.Nil(t, Rows("nope"))
}
