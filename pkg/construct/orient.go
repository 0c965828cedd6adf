package construct

// Orientation is the interpretation of a two-dimensional input: each
// top-level sequence as one column, or as one row.
type Orientation int

const (
	// OrientAuto resolves orientation from the input shape per call
	OrientAuto Orientation = iota
	// OrientRow reads each top-level sequence as one row
	OrientRow
	// OrientColumn reads each top-level sequence as one column
	OrientColumn
)

func (o Orientation) String() string {
	switch o {
	case OrientRow:
		return "row"
	case OrientColumn:
		return "column"
	default:
		return "auto"
	}
}

// resolveOrientation decides how a two-dimensional input of shape
// outer×inner is read. The tie-break order is a design commitment:
// ambiguity never errors, it resolves deterministically.
//
//  1. An explicit orientation is honored unconditionally.
//  2. With declared column names, if exactly one dimension equals the
//     declared count, the orientation making the other dimension the row
//     count wins: outer==declared reads column-wise, inner==declared
//     reads row-wise. Both or neither matching falls through.
//  3. Default: column orientation, each top-level sequence is a column.
func resolveOrientation(orient Orientation, outer, inner, declared int) Orientation {
	if orient != OrientAuto {
		return orient
	}
	if declared > 0 {
		outerMatch := outer == declared
		innerMatch := inner == declared
		if outerMatch != innerMatch {
			if outerMatch {
				return OrientColumn
			}
			return OrientRow
		}
	}
	return OrientColumn
}
