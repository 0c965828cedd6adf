package construct

import (
	"gonum.org/v1/gonum/mat"

	"github.com/strataframe/strata/pkg/frame"
)

// FromMatrix constructs a table from a two-dimensional numeric buffer.
// Orientation resolution treats the matrix's row dimension as the outer
// dimension, so the column-major default reads each matrix row as one
// table column. Values copy into per-column buffers; the source matrix
// is never touched.
//
// Columns type as float64 unless a declared type or override retypes
// them (an integral-valued matrix casts cleanly to int64).
func FromMatrix(m mat.Matrix, opts ...Option) (*frame.Table, error) {
	o := applyOptions(opts)

	rows, cols := m.Dims()
	orient := resolveOrientation(o.orient, rows, cols, o.schema.Len())

	var out [][]interface{}
	if orient == OrientColumn {
		out = make([][]interface{}, rows)
		for i := 0; i < rows; i++ {
			values := make([]interface{}, cols)
			for j := 0; j < cols; j++ {
				values[j] = m.At(i, j)
			}
			out[i] = values
		}
	} else {
		out = make([][]interface{}, cols)
		for j := 0; j < cols; j++ {
			values := make([]interface{}, rows)
			for i := 0; i < rows; i++ {
				values[i] = m.At(i, j)
			}
			out[j] = values
		}
	}

	names := make([]string, len(out))
	types := make([]frame.DataType, len(out))
	for i := range types {
		types[i] = frame.TypeFloat64
	}
	return buildTypedTable(names, out, types, o)
}
