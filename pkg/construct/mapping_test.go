package construct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataframe/strata/pkg/errors"
	"github.com/strataframe/strata/pkg/frame"
	"github.com/strataframe/strata/pkg/schema"
	"github.com/strataframe/strata/pkg/testutil"
)

func TestFromMapRoundTrip(t *testing.T) {
	table, err := FromMap(map[string]interface{}{
		"id":   []interface{}{1, 2, 3},
		"name": []interface{}{"a", "b", nil},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, table.NumRows())
	// no declared order: lexicographic
	assert.Equal(t, []string{"id", "name"}, table.Names())
	testutil.RequireColumn(t, table, "id", frame.TypeInt64,
		[]interface{}{int64(1), int64(2), int64(3)})
	testutil.RequireColumn(t, table, "name", frame.TypeString,
		[]interface{}{"a", "b", nil})
}

func TestFromMapDeclaredOrder(t *testing.T) {
	table, err := FromMap(map[string]interface{}{
		"b": []interface{}{1},
		"a": []interface{}{2},
	}, WithNames("b", "a"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, table.Names())
}

func TestFromMapOverridePrecedence(t *testing.T) {
	table, err := FromMap(map[string]interface{}{
		"v": []interface{}{1, 2, 3},
	}, WithOverrides(schema.Overrides{"v": frame.TypeFloat64}))
	require.NoError(t, err)
	testutil.RequireColumn(t, table, "v", frame.TypeFloat64,
		[]interface{}{1.0, 2.0, 3.0})
}

func TestFromMapUnknownOverride(t *testing.T) {
	_, err := FromMap(map[string]interface{}{
		"v": []interface{}{1},
	}, WithOverrides(schema.Overrides{"nonexistent": frame.TypeInt64}))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnknownOverride))
}

func TestFromMapSchemaLengthMismatch(t *testing.T) {
	_, err := FromMap(map[string]interface{}{
		"a": []interface{}{1},
		"b": []interface{}{2},
	}, WithNames("a", "b", "c"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeSchemaLength))
}

func TestFromMapAdoptsColumns(t *testing.T) {
	col, err := frame.NewColumn("orig", frame.TypeInt64, []interface{}{1, 2})
	require.NoError(t, err)

	table, err := FromMap(map[string]interface{}{
		"adopted": col,
		"fresh":   []interface{}{"x", "y"},
	})
	require.NoError(t, err)

	// adopted under the mapping key, values shared with the source column
	testutil.RequireColumn(t, table, "adopted", frame.TypeInt64,
		[]interface{}{int64(1), int64(2)})
	assert.Equal(t, "orig", col.Name())
}

func TestFromMapAdoptedColumnOverrideCasts(t *testing.T) {
	col, err := frame.NewColumn("v", frame.TypeInt64, []interface{}{1, 2})
	require.NoError(t, err)

	table, err := FromMap(map[string]interface{}{"v": col},
		WithOverrides(schema.Overrides{"v": frame.TypeFloat64}))
	require.NoError(t, err)
	testutil.RequireColumn(t, table, "v", frame.TypeFloat64,
		[]interface{}{1.0, 2.0})
	// the source column is untouched
	assert.Equal(t, frame.TypeInt64, col.Type())
}

func TestFromMapScalarBroadcast(t *testing.T) {
	table, err := FromMap(map[string]interface{}{
		"id":    []interface{}{1, 2, 3},
		"group": "control",
		"meta":  map[string]interface{}{"v": 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, table.NumRows())
	testutil.RequireColumn(t, table, "group", frame.TypeString,
		[]interface{}{"control", "control", "control"})
	meta := table.Column("meta")
	require.NotNil(t, meta)
	assert.Equal(t, frame.TypeJSON, meta.Type())
	assert.JSONEq(t, `{"v":1}`, string(meta.Get(2).([]byte)))
}

func TestFromMapOnlyScalarsMakesOneRow(t *testing.T) {
	table, err := FromMap(map[string]interface{}{"a": 1, "b": "x"})
	require.NoError(t, err)
	assert.Equal(t, 1, table.NumRows())
}

func TestFromMapRaggedSequences(t *testing.T) {
	_, err := FromMap(map[string]interface{}{
		"a": []interface{}{1, 2},
		"b": []interface{}{1},
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
}

func TestFromMapEmptyWithTypedSchema(t *testing.T) {
	table, err := FromMap(map[string]interface{}{},
		WithSchema(schema.Declare(
			frame.Field{Name: "id", Type: frame.TypeInt64},
			frame.Field{Name: "name", Type: frame.TypeString},
		)))
	require.NoError(t, err)

	assert.Equal(t, 0, table.NumRows())
	assert.Equal(t, []string{"id", "name"}, table.Names())
	assert.Equal(t, frame.TypeInt64, table.Column("id").Type())
	assert.Equal(t, frame.TypeString, table.Column("name").Type())
}

func TestFromMapAllNullColumnInfersNull(t *testing.T) {
	table, err := FromMap(map[string]interface{}{
		"known":   []interface{}{1, 2},
		"unknown": []interface{}{nil, nil},
	})
	require.NoError(t, err)
	assert.Equal(t, frame.TypeNull, table.Column("unknown").Type())
	assert.Equal(t, 2, table.Column("unknown").NullCount())
}

func TestFromMapTypedSlices(t *testing.T) {
	table, err := FromMap(map[string]interface{}{
		"ints":   []int{1, 2},
		"floats": []float64{0.5, 1.5},
	})
	require.NoError(t, err)
	testutil.RequireColumn(t, table, "ints", frame.TypeInt64,
		[]interface{}{int64(1), int64(2)})
	testutil.RequireColumn(t, table, "floats", frame.TypeFloat64,
		[]interface{}{0.5, 1.5})
}
