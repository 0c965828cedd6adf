package construct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/strataframe/strata/pkg/frame"
	"github.com/strataframe/strata/pkg/schema"
	"github.com/strataframe/strata/pkg/testutil"
)

func TestFromMatrixColumnMajorDefault(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	table, err := FromMatrix(m, WithNames("a", "b"))
	require.NoError(t, err)

	// two matrix rows with two names: each matrix row is a column
	assert.Equal(t, 3, table.NumRows())
	testutil.RequireColumn(t, table, "a", frame.TypeFloat64,
		[]interface{}{1.0, 2.0, 3.0})
	testutil.RequireColumn(t, table, "b", frame.TypeFloat64,
		[]interface{}{4.0, 5.0, 6.0})
}

func TestFromMatrixRowOrientation(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
	})
	table, err := FromMatrix(m, WithOrientation(OrientRow), WithNames("x", "y"))
	require.NoError(t, err)

	assert.Equal(t, 3, table.NumRows())
	testutil.RequireColumn(t, table, "x", frame.TypeFloat64,
		[]interface{}{1.0, 2.0, 3.0})
	testutil.RequireColumn(t, table, "y", frame.TypeFloat64,
		[]interface{}{10.0, 20.0, 30.0})
}

func TestFromMatrixPlaceholderNames(t *testing.T) {
	table, err := FromMatrix(mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	require.NoError(t, err)
	assert.Equal(t, []string{"column_0", "column_1"}, table.Names())
}

func TestFromMatrixIntegralOverride(t *testing.T) {
	m := mat.NewDense(1, 3, []float64{1, 2, 3})
	table, err := FromMatrix(m, WithNames("n"),
		WithOverrides(schema.Overrides{"n": frame.TypeInt64}))
	require.NoError(t, err)
	testutil.RequireColumn(t, table, "n", frame.TypeInt64,
		[]interface{}{int64(1), int64(2), int64(3)})
}

func TestFromMatrixSourceUntouched(t *testing.T) {
	backing := []float64{1, 2, 3, 4}
	m := mat.NewDense(2, 2, backing)
	table, err := FromMatrix(m)
	require.NoError(t, err)

	require.NoError(t, table.ColumnAt(0).Append(99.0))
	assert.Equal(t, []float64{1, 2, 3, 4}, backing)
}
