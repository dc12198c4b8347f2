package arr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() map[string]any {
	return map[string]any{
		"user": map[string]any{
			"name": "ada",
			"tags": []any{"admin", "ops"},
			"meta": map[string]any{"age": 36, "note": nil},
		},
		"count": 3,
	}
}

func TestGet(t *testing.T) {
	m := sample()

	tests := []struct {
		name string
		path string
		def  any
		want any
	}{
		{"top level", "count", nil, 3},
		{"nested", "user.name", nil, "ada"},
		{"sequence index", "user.tags.1", nil, "ops"},
		{"deep", "user.meta.age", nil, 36},
		{"present nil", "user.meta.note", "x", nil},
		{"missing leaf", "user.email", "none", "none"},
		{"missing branch", "missing.path", "d", "d"},
		{"through scalar", "count.value", "d", "d"},
		{"index out of range", "user.tags.5", "d", "d"},
		{"missing without dots", "nope", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Get(m, tt.path, tt.def))
		})
	}
}

func TestGetEmptyPathReturnsContainer(t *testing.T) {
	m := sample()
	assert.Equal(t, m, Get(m, "", nil))
}

func TestGetNonContainer(t *testing.T) {
	assert.Equal(t, "d", Get("scalar", "a", "d"))
	assert.Equal(t, "d", Get(nil, "", "d"))
}

func TestGetLazyDefault(t *testing.T) {
	calls := 0
	def := func() any {
		calls++
		return "computed"
	}

	assert.Equal(t, "computed", Get(sample(), "no.such", def))
	assert.Equal(t, 1, calls)

	assert.Equal(t, "ada", Get(sample(), "user.name", def))
	assert.Equal(t, 1, calls)
}

func TestGetTypedContainers(t *testing.T) {
	m := map[string]any{
		"labels": map[string]string{"env": "prod"},
		"ports":  []int{80, 443},
	}

	assert.Equal(t, "prod", Get(m, "labels.env", nil))
	assert.Equal(t, 443, Get(m, "ports.1", nil))
	assert.Nil(t, Get(m, "ports.2", nil))
}

// A key containing dots is matched literally before the path is split. This
// precedence is intentional and applies to Get, Has and Forget alike.
func TestLiteralDottedKeyWins(t *testing.T) {
	m := map[string]any{
		"a.b": "literal",
		"a":   map[string]any{"b": "nested"},
	}

	assert.Equal(t, "literal", Get(m, "a.b", nil))
	assert.True(t, Has(m, "a.b"))

	Forget(m, "a.b")
	assert.NotContains(t, m, "a.b")
	assert.Equal(t, "nested", Get(m, "a.b", nil), "nested value survives until the literal key is gone")

	Forget(m, "a.b")
	assert.False(t, Has(m, "a.b"))
	assert.Equal(t, map[string]any{}, m["a"])
}

func TestSet(t *testing.T) {
	t.Run("creates intermediate mappings", func(t *testing.T) {
		m := Set(map[string]any(nil), "a.b.c", 1)
		assert.Equal(t, map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}, m)
	})

	t.Run("round trip", func(t *testing.T) {
		m := sample()
		for _, v := range []any{"x", 42, []any{1}, map[string]any{"k": "v"}, nil} {
			Set(m, "a.b.c", v)
			assert.Equal(t, v, Get(m, "a.b.c", "sentinel"))
		}
	})

	t.Run("replaces scalar intermediates", func(t *testing.T) {
		m := map[string]any{"count": 3}
		Set(m, "count.value", 4)
		assert.Equal(t, map[string]any{"value": 4}, m["count"])
	})

	t.Run("merges mappings", func(t *testing.T) {
		m := map[string]any{"opts": map[string]any{"a": 1, "b": 2}}
		Set(m, "opts", map[string]any{"b": 3, "c": 4})
		assert.Equal(t, map[string]any{"a": 1, "b": 3, "c": 4}, m["opts"])
	})

	t.Run("appends sequences", func(t *testing.T) {
		m := map[string]any{"list": []any{1, 2}}
		Set(m, "list", []any{3})
		assert.Equal(t, []any{1, 2, 3}, m["list"])
	})

	t.Run("overwrites mismatched kinds", func(t *testing.T) {
		m := map[string]any{"opts": map[string]any{"a": 1}}
		Set(m, "opts", "flat")
		assert.Equal(t, "flat", m["opts"])
	})

	t.Run("indexes into sequences", func(t *testing.T) {
		m := sample()
		Set(m, "user.tags.0", "root")
		Set(m, "user.tags.2", "dev")
		assert.Equal(t, []any{"root", "ops", "dev"}, Get(m, "user.tags", nil))
	})

	t.Run("non index segment converts sequence", func(t *testing.T) {
		m := map[string]any{"list": []any{"x"}}
		Set(m, "list.name", "y")
		assert.Equal(t, map[string]any{"0": "x", "name": "y"}, m["list"])
	})

	t.Run("empty path", func(t *testing.T) {
		m := map[string]any{"a": 1}
		assert.Equal(t, map[string]any{"a": 1}, Set(m, "", 2))
	})
}

func TestHas(t *testing.T) {
	m := sample()

	assert.True(t, Has(m, "user.name"))
	assert.True(t, Has(m, "user.name", "count", "user.tags.0"))
	assert.True(t, Has(m, "user.meta.note"), "nil values still exist")
	assert.False(t, Has(m, "user.name", "user.email"))
	assert.False(t, Has(m))
	assert.False(t, Has(map[string]any{}, "a"))
	assert.False(t, Has(nil, "a"))
}

func TestHasMatchesGet(t *testing.T) {
	m := sample()
	sentinel := &struct{}{}

	for _, path := range []string{"user", "user.name", "user.meta.age", "user.x", "count.x", "user.tags.3", "a.b"} {
		assert.Equal(t, Get(m, path, sentinel) != sentinel, Has(m, path), path)
	}
}

func TestForget(t *testing.T) {
	m := sample()

	Forget(m, "user.meta.age", "user.tags.0", "missing.branch", "count.x")

	assert.False(t, Has(m, "user.meta.age"))
	assert.Equal(t, []any{"ops"}, Get(m, "user.tags", nil))
	assert.Equal(t, 3, m["count"])

	Forget(m, "count")
	assert.NotContains(t, m, "count")
}

func TestExceptOnlyPull(t *testing.T) {
	m := sample()

	out := Except(m, "user.meta", "count")
	assert.False(t, Has(out, "user.meta"))
	assert.NotContains(t, out, "count")
	assert.True(t, Has(m, "user.meta"), "input is untouched")

	assert.Equal(t, map[string]any{"count": 3}, Only(m, "count", "absent"))

	v := Pull(m, "user.name", nil)
	assert.Equal(t, "ada", v)
	assert.False(t, Has(m, "user.name"))
}

func TestAdd(t *testing.T) {
	m := map[string]any{"a": 1, "n": nil}

	Add(m, "a", 2)
	Add(m, "n", 3)
	Add(m, "b.c", 4)

	assert.Equal(t, 1, m["a"])
	assert.Equal(t, 3, m["n"])
	assert.Equal(t, 4, Get(m, "b.c", nil))
}

func TestDot(t *testing.T) {
	got := Dot(map[string]any{
		"a":     map[string]any{"b": 1, "c": []any{"x", "y"}},
		"empty": map[string]any{},
	}, "")

	assert.Equal(t, map[string]any{
		"a.b":   1,
		"a.c.0": "x",
		"a.c.1": "y",
		"empty": map[string]any{},
	}, got)
}

func TestAccessibleAndAssoc(t *testing.T) {
	assert.True(t, Accessible(map[string]any{}))
	assert.True(t, Accessible([]string{}))
	assert.False(t, Accessible("x"))
	assert.False(t, Accessible([]byte("x")))
	assert.False(t, Accessible(map[int]string{}))

	assert.True(t, IsAssoc(map[string]any{"a": 1}))
	assert.False(t, IsAssoc(map[string]any{"0": 1, "1": 2}))
	assert.False(t, IsAssoc([]any{1}))
}

func TestWrapAndValue(t *testing.T) {
	assert.Equal(t, []any{}, Wrap(nil))
	assert.Equal(t, []any{1}, Wrap(1))
	assert.Equal(t, []any{1, 2}, Wrap([]any{1, 2}))

	assert.Equal(t, 5, Value(func() any { return 5 }))
	assert.Equal(t, "v", Value("v"))
}

func TestExists(t *testing.T) {
	m := sample()
	require.True(t, Exists(m, "user"))
	assert.False(t, Exists(m, "user.name"))
	assert.True(t, Exists([]any{1, 2}, "1"))
	assert.False(t, Exists([]any{1, 2}, "01"))
}
