package construct

import (
	"sort"
	"time"

	"github.com/strataframe/strata/pkg/errors"
	"github.com/strataframe/strata/pkg/frame"
	"github.com/strataframe/strata/pkg/metrics"
	"github.com/strataframe/strata/pkg/schema"
)

// FromMap constructs a table from a mapping of column name to value
// sequence. A value may be a sequence, an already-typed *frame.Column
// (adopted without copying), or a scalar — including a nested mapping —
// which broadcasts to the table height. Go maps carry no order, so the
// column order is the declared schema's order when one is supplied and
// lexicographic otherwise.
//
// An empty mapping with a declared schema produces an empty table typed
// per the declaration.
func FromMap(data map[string]interface{}, opts ...Option) (*frame.Table, error) {
	o := applyOptions(opts)

	var names []string
	if o.schema.Len() > 0 {
		if len(data) != 0 && o.schema.Len() != len(data) {
			return nil, errors.SchemaLengthMismatch(o.schema.Len(), len(data))
		}
		names = o.schema.Names()
	} else {
		names = make([]string, 0, len(data))
		for name := range data {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	cells := make([]mapCell, len(names))
	height := -1
	for i, name := range names {
		v, present := data[name]
		if !present {
			if len(data) != 0 {
				return nil, errors.Newf(errors.ErrorTypeData,
					"declared column %q not present in mapping", name)
			}
			// empty mapping under a declared schema: empty column
			cells[i] = mapCell{values: nil, sized: true, size: 0}
			height = 0
			continue
		}
		cells[i] = classifyMapValue(v)
		if !cells[i].sized {
			continue
		}
		if height < 0 {
			height = cells[i].size
		} else if cells[i].size != height {
			return nil, errors.Newf(errors.ErrorTypeData,
				"mapping column %q has %d rows, expected %d",
				name, cells[i].size, height)
		}
	}
	if height < 0 {
		// only scalars: a one-row table
		height = 1
	}

	// materialize broadcasts so every cell has column-shaped values
	for i := range cells {
		if cells[i].sized || cells[i].col != nil {
			continue
		}
		values := make([]interface{}, height)
		for r := range values {
			values[r] = cells[i].scalar
		}
		cells[i].values = values
	}

	resolved, err := schema.Resolve(names, o.schema, o.overrides, func(i int, name string) (frame.DataType, error) {
		if cells[i].col != nil {
			// adopted columns arrive typed; no inference
			return cells[i].col.Type(), nil
		}
		start := time.Now()
		t, err := schema.Infer(name, cells[i].values, o.inferLimit)
		metrics.ObserveInference(time.Since(start))
		return t, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]*frame.Column, resolved.Len())
	for i := 0; i < resolved.Len(); i++ {
		f := resolved.Field(i)
		if adopted := cells[i].col; adopted != nil {
			if adopted.Len() != height {
				return nil, errors.Newf(errors.ErrorTypeData,
					"adopted column %q has %d rows, expected %d",
					adopted.Name(), adopted.Len(), height)
			}
			col := adopted
			if col.Name() != f.Name {
				col = col.Rename(f.Name)
			}
			if col.Type() != f.Type {
				cast, err := col.Cast(f.Type)
				if err != nil {
					return nil, err
				}
				col = cast
			}
			out[i] = col
			continue
		}
		col, err := frame.NewColumn(f.Name, f.Type, cells[i].values)
		if err != nil {
			return nil, err
		}
		out[i] = col
	}
	return frame.NewTable(out...)
}

// mapCell is one classified mapping value: an adopted column, a value
// sequence, or a scalar awaiting broadcast.
type mapCell struct {
	col    *frame.Column
	values []interface{}
	scalar interface{}
	sized  bool
	size   int
}

func classifyMapValue(v interface{}) mapCell {
	switch x := v.(type) {
	case *frame.Column:
		return mapCell{col: x, sized: true, size: x.Len()}
	case []byte:
		// a blob is a scalar, not a sequence of numbers
		return mapCell{scalar: x}
	case string:
		return mapCell{scalar: x}
	}
	if seq, ok := asSequence(v); ok {
		return mapCell{values: seq, sized: true, size: len(seq)}
	}
	return mapCell{scalar: v}
}
