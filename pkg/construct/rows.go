package construct

import (
	"sort"

	"github.com/strataframe/strata/pkg/errors"
	"github.com/strataframe/strata/pkg/frame"
	"github.com/strataframe/strata/pkg/pool"
)

// FromRows constructs a table from a sequence of row mappings. The
// column set is the union of keys seen across a leading row-scan window
// sized by the inference limit; keys first appearing beyond the window
// are ignored. Union order is first-seen row-major, lexicographic within
// a row. A row missing a known key contributes a null.
func FromRows(rows []map[string]interface{}, opts ...Option) (*frame.Table, error) {
	o := applyOptions(opts)

	window := o.inferLimit
	if window <= 0 || window > len(rows) {
		window = len(rows)
	}

	var names []string
	seen := make(map[string]struct{})
	fresh := pool.GetKeySlice()
	defer pool.PutKeySlice(fresh)
	for r := 0; r < window; r++ {
		*fresh = (*fresh)[:0]
		for key := range rows[r] {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				*fresh = append(*fresh, key)
			}
		}
		sort.Strings(*fresh)
		names = append(names, *fresh...)
	}

	cols := make([][]interface{}, len(names))
	for i, name := range names {
		values := make([]interface{}, len(rows))
		for r, row := range rows {
			values[r] = row[name] // nil when absent
		}
		cols[i] = values
	}

	return buildTable(names, cols, o)
}

// FromRecords constructs a table from a sequence of sequences, resolving
// the orientation from an explicit hint, the declared name count, or the
// column-major default, in that order. Values are always copied.
func FromRecords(rows interface{}, opts ...Option) (*frame.Table, error) {
	o := applyOptions(opts)

	normalized, err := normalizeRecords(rows)
	if err != nil {
		return nil, err
	}

	outer := len(normalized)
	inner := 0
	if outer > 0 {
		inner = len(normalized[0])
	}

	if outer == 0 && o.schema.Len() > 0 {
		// no data: empty columns per the declared schema
		cols := make([][]interface{}, o.schema.Len())
		names := make([]string, o.schema.Len())
		return buildTable(names, cols, o)
	}

	orient := resolveOrientation(o.orient, outer, inner, o.schema.Len())

	var cols [][]interface{}
	if orient == OrientColumn {
		cols = normalized
	} else {
		cols = make([][]interface{}, inner)
		for j := 0; j < inner; j++ {
			values := make([]interface{}, outer)
			for r := 0; r < outer; r++ {
				values[r] = normalized[r][j]
			}
			cols[j] = values
		}
	}

	names := make([]string, len(cols))
	return buildTable(names, cols, o)
}

func normalizeRecords(rows interface{}) ([][]interface{}, error) {
	outerSeq, ok := asSequence(rows)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeData,
			"sequence-of-sequences input is %T, not a sequence", rows)
	}
	normalized := make([][]interface{}, len(outerSeq))
	for i, row := range outerSeq {
		seq, ok := asSequence(row)
		if !ok {
			return nil, errors.Newf(errors.ErrorTypeData,
				"row %d is %T, not a sequence", i, row)
		}
		if i > 0 && len(seq) != len(normalized[0]) {
			return nil, errors.Newf(errors.ErrorTypeData,
				"ragged input: row %d has %d values, row 0 has %d",
				i, len(seq), len(normalized[0]))
		}
		normalized[i] = seq
	}
	return normalized, nil
}
