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

func TestFromRowsUnion(t *testing.T) {
	table, err := FromRows([]map[string]interface{}{
		{"id": 1, "name": "a"},
		{"id": 2, "extra": true},
		{"id": 3},
	})
	require.NoError(t, err)

	// union order is first-seen row-major, lexicographic within a row
	assert.Equal(t, []string{"id", "name", "extra"}, table.Names())
	testutil.RequireColumn(t, table, "id", frame.TypeInt64,
		[]interface{}{int64(1), int64(2), int64(3)})
	testutil.RequireColumn(t, table, "name", frame.TypeString,
		[]interface{}{"a", nil, nil})
	testutil.RequireColumn(t, table, "extra", frame.TypeBool,
		[]interface{}{nil, true, nil})
}

func TestFromRowsScanWindow(t *testing.T) {
	table, err := FromRows([]map[string]interface{}{
		{"a": 1},
		{"a": 2, "late": "x"},
	}, WithInferLimit(1))
	require.NoError(t, err)

	// keys first seen beyond the window are dropped
	assert.Equal(t, []string{"a"}, table.Names())
	assert.Equal(t, 2, table.NumRows())
}

func TestFromRowsDeclaredNames(t *testing.T) {
	table, err := FromRows([]map[string]interface{}{
		{"x": 1, "y": 2},
	}, WithNames("left", "right"))
	require.NoError(t, err)
	assert.Equal(t, []string{"left", "right"}, table.Names())
}

func TestFromRowsEmpty(t *testing.T) {
	table, err := FromRows(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, table.NumRows())
	assert.Equal(t, 0, table.NumColumns())
}

func TestFromRecordsInfersColumnOrientation(t *testing.T) {
	// two sequences of three values, two names: the name count matches
	// the outer dimension, so each sequence becomes a column
	table, err := FromRecords([][]interface{}{
		{1, 2, 3},
		{4, 5, 6},
	}, WithNames("a", "b"))
	require.NoError(t, err)

	assert.Equal(t, 3, table.NumRows())
	assert.Equal(t, 2, table.NumColumns())
	testutil.RequireColumn(t, table, "a", frame.TypeInt64,
		[]interface{}{int64(1), int64(2), int64(3)})
	testutil.RequireColumn(t, table, "b", frame.TypeInt64,
		[]interface{}{int64(4), int64(5), int64(6)})
}

func TestFromRecordsExplicitRowOrientation(t *testing.T) {
	table, err := FromRecords([][]interface{}{
		{1, "a"},
		{2, "b"},
		{3, "c"},
	}, WithOrientation(OrientRow), WithNames("id", "label"))
	require.NoError(t, err)

	assert.Equal(t, 3, table.NumRows())
	testutil.RequireColumn(t, table, "id", frame.TypeInt64,
		[]interface{}{int64(1), int64(2), int64(3)})
	testutil.RequireColumn(t, table, "label", frame.TypeString,
		[]interface{}{"a", "b", "c"})
}

func TestFromRecordsInnerDimensionMatch(t *testing.T) {
	// three sequences of two values each with two names: the inner
	// dimension matches, so the sequences are rows
	table, err := FromRecords([][]interface{}{
		{1, "a"},
		{2, "b"},
		{3, "c"},
	}, WithNames("id", "label"))
	require.NoError(t, err)
	assert.Equal(t, 3, table.NumRows())
	assert.Equal(t, []string{"id", "label"}, table.Names())
}

func TestFromRecordsPlaceholderNames(t *testing.T) {
	table, err := FromRecords([][]interface{}{
		{1, 2},
		{3, 4},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"column_0", "column_1"}, table.Names())
}

func TestFromRecordsNameCountMismatch(t *testing.T) {
	_, err := FromRecords([][]interface{}{
		{1, 2, 3},
	}, WithNames("a", "b"), WithOrientation(OrientColumn))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeSchemaLength))
}

func TestFromRecordsOverrideWidensInts(t *testing.T) {
	table, err := FromRecords([][]interface{}{
		{1, 2, 3},
	}, WithNames("v"), WithOverrides(schema.Overrides{"v": frame.TypeFloat64}))
	require.NoError(t, err)
	testutil.RequireColumn(t, table, "v", frame.TypeFloat64,
		[]interface{}{1.0, 2.0, 3.0})
}

func TestFromRecordsMixedTypesConflict(t *testing.T) {
	_, err := FromRecords([][]interface{}{
		{1, true, 3},
	}, WithNames("v"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInference))

	var structured *errors.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, "v", structured.Detail("column"))
}

func TestFromRecordsRagged(t *testing.T) {
	_, err := FromRecords([][]interface{}{
		{1, 2},
		{3},
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
	assert.Contains(t, err.Error(), "ragged")
}

func TestFromRecordsEmptyWithSchema(t *testing.T) {
	table, err := FromRecords([][]interface{}{},
		WithSchema(schema.Declare(
			frame.Field{Name: "id", Type: frame.TypeInt64},
		)))
	require.NoError(t, err)
	assert.Equal(t, 0, table.NumRows())
	assert.Equal(t, []string{"id"}, table.Names())
	assert.Equal(t, frame.TypeInt64, table.Column("id").Type())
}

func TestFromRecordsTypedRows(t *testing.T) {
	table, err := FromRecords([][]int{{1, 2, 3}}, WithNames("v"))
	require.NoError(t, err)
	testutil.RequireColumn(t, table, "v", frame.TypeInt64,
		[]interface{}{int64(1), int64(2), int64(3)})
}
