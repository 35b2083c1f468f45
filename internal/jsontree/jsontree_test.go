package jsontree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "spreadsheetId": "abc",
  "sheets": [
    {"properties": {"sheetId": 0, "title": "Sheet1"}},
    {"properties": {"sheetId": 42, "title": "Data"}, "charts": [{"chartId": 7}]}
  ],
  "replies": [{"addChart": {"chart": {"chartId": 11111, "nested": {"chartId": 5}}}}]
}`

func mustParse(t *testing.T) any {
	t.Helper()
	tree, err := Parse([]byte(sample))
	require.NoError(t, err)
	return tree
}

func TestFirstAndAll(t *testing.T) {
	tree := mustParse(t)

	v, ok := First(tree, "chartId")
	require.True(t, ok)
	id, ok := Int64(v)
	require.True(t, ok)
	assert.Equal(t, int64(11111), id)

	all := All(tree, "chartId")
	require.Len(t, all, 3)
	ids := make([]int64, 0, len(all))
	for _, v := range all {
		id, _ := Int64(v)
		ids = append(ids, id)
	}
	assert.Equal(t, []int64{11111, 5, 7}, ids)

	_, ok = First(tree, "missing")
	assert.False(t, ok)
}

func TestAllSearchesSiblings(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{name: "sibling object", doc: `{"chartId":1,"nested":{"chartId":2}}`, want: 2},
		{name: "matched value not searched", doc: `{"chartId":{"chartId":2}}`, want: 1},
		{name: "array of matches", doc: `[{"chartId":1},{"x":{"chartId":2}}]`, want: 2},
		{name: "no match", doc: `{"a":[1,2,{"b":3}]}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			assert.Len(t, All(tree, "chartId"), tt.want)
		})
	}
}

func TestChunks(t *testing.T) {
	tree := mustParse(t)

	chunks := Chunks(tree, "sheetId", 42)
	require.Len(t, chunks, 1)
	title, ok := String(chunks[0]["title"])
	require.True(t, ok)
	assert.Equal(t, "Data", title)

	assert.Empty(t, Chunks(tree, "sheetId", 99))
	assert.Len(t, ChunksWithKey(tree, "title"), 2)
}

func TestPairs(t *testing.T) {
	tree := mustParse(t)

	pairs := Pairs(tree, "title", "sheetId")
	require.Len(t, pairs, 2)
	first, ok := Int64(pairs["Sheet1"])
	require.True(t, ok)
	assert.Equal(t, int64(0), first)
	second, _ := Int64(pairs["Data"])
	assert.Equal(t, int64(42), second)

	nested, err := Parse([]byte(`{"title":"outer","sheetId":1,"inner":{"title":"inner","sheetId":2}}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"outer": json.Number("1")}, Pairs(nested, "title", "sheetId"))
}

func TestDecode(t *testing.T) {
	type reply struct {
		ObjectID string `json:"objectId"`
	}
	tree, err := Decode(map[string]any{"replies": []any{map[string]any{"createSlide": reply{ObjectID: "s1"}}}})
	require.NoError(t, err)

	v, ok := First(tree, "objectId")
	require.True(t, ok)
	assert.Equal(t, "s1", v)
}

func TestScalarHelpers(t *testing.T) {
	tests := []struct {
		in   any
		want int64
		ok   bool
	}{
		{json.Number("12"), 12, true},
		{json.Number("1.5"), 0, false},
		{float64(3), 3, true},
		{"9", 9, true},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := Int64(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
	}

	_, ok := String(3)
	assert.False(t, ok)
}
