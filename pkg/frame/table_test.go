package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataframe/strata/pkg/compression"
	"github.com/strataframe/strata/pkg/errors"
)

func mustColumn(t *testing.T, name string, dt DataType, values []interface{}) *Column {
	t.Helper()
	col, err := NewColumn(name, dt, values)
	require.NoError(t, err)
	return col
}

func TestNewTable(t *testing.T) {
	tbl, err := NewTable(
		mustColumn(t, "id", TypeInt64, []interface{}{1, 2}),
		mustColumn(t, "name", TypeString, []interface{}{"a", "b"}),
	)
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumColumns())
	assert.Equal(t, []string{"id", "name"}, tbl.Names())
	assert.Equal(t, TypeInt64, tbl.Column("id").Type())
	assert.Nil(t, tbl.Column("missing"))
	assert.Equal(t, "name", tbl.ColumnAt(1).Name())
}

func TestNewTableRaggedColumns(t *testing.T) {
	_, err := NewTable(
		mustColumn(t, "a", TypeInt64, []interface{}{1, 2}),
		mustColumn(t, "b", TypeInt64, []interface{}{1}),
	)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
}

func TestNewTableDuplicateNames(t *testing.T) {
	_, err := NewTable(
		mustColumn(t, "a", TypeInt64, []interface{}{1}),
		mustColumn(t, "a", TypeInt64, []interface{}{2}),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestEmptyTable(t *testing.T) {
	tbl, err := NewTable()
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, 0, tbl.NumColumns())
}

func TestCompressedTableRoundTrip(t *testing.T) {
	tbl, err := NewTable(
		mustColumn(t, "id", TypeInt64, []interface{}{1, 2, nil, 1 << 60}),
		mustColumn(t, "score", TypeFloat64, []interface{}{0.5, nil, 2.25, -1.0}),
		mustColumn(t, "tag", TypeString, []interface{}{"x", "y", "x", nil}),
		mustColumn(t, "ok", TypeBool, []interface{}{true, false, nil, true}),
		mustColumn(t, "blob", TypeBytes, []interface{}{[]byte("raw"), nil, []byte{0x00, 0xff}, []byte("z")}),
	)
	require.NoError(t, err)

	for _, alg := range []compression.Algorithm{
		compression.None, compression.Snappy, compression.S2,
		compression.LZ4, compression.Zstd, compression.Gzip,
	} {
		t.Run(string(alg), func(t *testing.T) {
			ct, err := Compress(tbl, &compression.Config{Algorithm: alg, Level: compression.Default})
			require.NoError(t, err)
			assert.Equal(t, tbl.NumRows(), ct.NumRows())
			assert.Equal(t, tbl.Fields(), ct.Fields())
			assert.Greater(t, ct.CompressedBytes(), int64(0))

			restored, err := ct.Decompress()
			require.NoError(t, err)
			assert.True(t, tbl.Equal(restored))
		})
	}
}
