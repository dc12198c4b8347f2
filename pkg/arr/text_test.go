package arr

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	params := map[string]any{
		"appid":     "wx1",
		"sign":      "abc",
		"sign_type": "MD5",
		"empty":     "",
		"none":      nil,
		"no":        false,
		"zero":      0,
		"list":      []any{},
	}

	got := Filter(params)
	assert.Equal(t, map[string]any{"appid": "wx1", "zero": 0}, got)

	got = Filter(map[string]any{"sign": "abc", "token": "t", "keep": 1}, "token")
	assert.Equal(t, map[string]any{"sign": "abc", "keep": 1}, got)
}

func TestIn(t *testing.T) {
	assert.True(t, In("JPG", []string{"png", "jpg"}))
	assert.False(t, In("gif", []string{"png", "jpg"}))
}

func TestQuery(t *testing.T) {
	q := Query(map[string]any{
		"b":    "x y",
		"a":    1,
		"ok":   true,
		"skip": nil,
		"tags": []any{"go", "php"},
		"user": map[string]any{"name": "ada~"},
	})

	assert.Equal(t, "a=1&b=x%20y&ok=1&tags%5B0%5D=go&tags%5B1%5D=php&user%5Bname%5D=ada~", q)

	values, err := url.ParseQuery(q)
	assert.NoError(t, err)
	assert.Equal(t, Values(map[string]any{
		"b":    "x y",
		"a":    1,
		"ok":   true,
		"tags": []any{"go", "php"},
		"user": map[string]any{"name": "ada~"},
	}), values)
}

func TestParse(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, ParseList("a,b;c\n"))
	assert.Equal(t, []string{}, ParseList(",;"))

	assert.Equal(t, map[string]string{
		"host": "localhost",
		"url":  "http://example.com",
		"0":    "plain",
	}, Parse("host:localhost;url:http://example.com\nplain"))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "a:1\nb:x\n", ToString(map[string]any{"b": "x", "a": 1}))
	assert.Equal(t, "x\n2\n1", ToString([]any{"x", 2, true}))
}

func TestTransformKeys(t *testing.T) {
	m := map[string]any{"a": 1, "b": 2, "c": 3}

	assert.Equal(t, map[string]any{"a": 2, "b": 1, "c": 3}, TransformKeys(m, map[string]string{"a": "b", "b": "a"}))
	assert.Equal(t, map[string]any{"x": 1, "b": 2, "c": 3}, TransformKeys(m, map[string]string{"a": "x", "z": "y"}))
	assert.Equal(t, map[string]any{"a": 1, "b": 2, "c": 3}, m)

	upper := TransformKeysFunc(map[string]any{"k": 1}, func(key string, value any) (string, any) {
		return key + key, value.(int) * 10
	})
	assert.Equal(t, map[string]any{"kk": 10}, upper)
}

func TestMergeDefault(t *testing.T) {
	got := MergeDefault(
		map[string]any{"page": 1, "size": 20},
		map[string]any{"size": 50, "extra": true},
	)
	assert.Equal(t, map[string]any{"page": 1, "size": 50}, got)
}

func TestSort(t *testing.T) {
	list := []any{"b", 10, "a", 2, 1.5}
	assert.Equal(t, []any{1.5, 2, 10, "a", "b"}, Sort(list))
	assert.Equal(t, []any{"b", 10, "a", 2, 1.5}, list)

	nested := map[string]any{"x": []any{3, 1, []any{"z", "y"}}}
	got := SortRecursive(nested).(map[string]any)
	assert.Equal(t, []any{1, 3, []any{"y", "z"}}, got["x"])

	assert.Equal(t, []string{"1", "2", "10", "a"}, Keys(map[string]any{"a": 0, "10": 0, "2": 0, "1": 0}))
}
