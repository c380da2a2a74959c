package table

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_UnmarshalJSONKeepsOrder(t *testing.T) {
	var r Row
	err := json.Unmarshal([]byte(`{"zeta":1,"alpha":"a","mid":null,"gpa":3.5,"tags":["x",2],"advisor":{"last":"Hopper","first":"Grace"}}`), &r)
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid", "gpa", "tags", "advisor"}, r.Keys())
	assert.Equal(t, int64(1), r.Value("zeta"))
	assert.Equal(t, "a", r.Value("alpha"))
	assert.Nil(t, r.Value("mid"))
	assert.InDelta(t, 3.5, r.Value("gpa"), 0.0001)
	assert.Equal(t, []any{"x", int64(2)}, r.Value("tags"))

	advisor, ok := r.Value("advisor").(Row)
	require.True(t, ok)
	assert.Equal(t, []string{"last", "first"}, advisor.Keys())
	assert.Equal(t, "{last: Hopper, first: Grace}", r.Text("advisor"))

	present, found := r.Get("mid")
	assert.True(t, found)
	assert.Nil(t, present)
	_, found = r.Get("missing")
	assert.False(t, found)
}

func TestRow_UnmarshalJSONRejectsNonObject(t *testing.T) {
	var r Row
	require.Error(t, json.Unmarshal([]byte(`[1,2]`), &r))
	require.NoError(t, json.Unmarshal([]byte(`null`), &r))
	assert.Equal(t, 0, r.Len())
}

func TestRow_MarshalJSON(t *testing.T) {
	r := NewRow(Field{"b", 2}, Field{"a", "x"}, Field{"c", nil})
	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2,"a":"x","c":null}`, string(out))
	assert.Equal(t, `{"b":2,"a":"x","c":null}`, string(out))
}

func TestNewRow_DuplicateKeys(t *testing.T) {
	r := NewRow(Field{"a", 1}, Field{"b", 2}, Field{"a", 3})
	assert.Equal(t, []string{"a", "b"}, r.Keys())
	assert.Equal(t, 3, r.Value("a"))
}

func TestRowFromMap_SortsKeys(t *testing.T) {
	r := RowFromMap(map[string]any{"name": "Ada", "id": 1, "gpa": 4.0})
	assert.Equal(t, []string{"gpa", "id", "name"}, r.Keys())
	assert.Equal(t, map[string]any{"name": "Ada", "id": 1, "gpa": 4.0}, r.Map())
}

func TestZeroRow(t *testing.T) {
	var r Row
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Keys())
	assert.Nil(t, r.Value("anything"))
	assert.Empty(t, r.Text("anything"))
}

func TestDecodeRows(t *testing.T) {
	rows, err := DecodeRows([]byte(`[{"id":1},{"id":2,"extra":true}]`))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"id", "extra"}, rows[1].Keys())

	rows, err = DecodeRows([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	_, err = DecodeRows([]byte(`{"id":1}`))
	assert.Error(t, err)
}
