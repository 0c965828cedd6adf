package construct

import (
	"time"

	"github.com/strataframe/strata/pkg/errors"
	"github.com/strataframe/strata/pkg/frame"
	"github.com/strataframe/strata/pkg/metrics"
	"github.com/strataframe/strata/pkg/schema"
)

// buildTable resolves the final schema over adapter-produced names and
// raw columns, then materializes the table. Inference runs only for
// columns with neither a declared nor an override type.
func buildTable(names []string, cols [][]interface{}, o *options) (*frame.Table, error) {
	resolved, err := schema.Resolve(names, o.schema, o.overrides, func(i int, name string) (frame.DataType, error) {
		start := time.Now()
		t, err := schema.Infer(name, cols[i], o.inferLimit)
		metrics.ObserveInference(time.Since(start))
		return t, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]*frame.Column, resolved.Len())
	for i := 0; i < resolved.Len(); i++ {
		f := resolved.Field(i)
		col, err := frame.NewColumn(f.Name, f.Type, cols[i])
		if err != nil {
			return nil, err
		}
		out[i] = col
	}
	return frame.NewTable(out...)
}

// buildTypedTable is buildTable for adapters whose source is already
// typed (matrix, Arrow, gota): types[i] stands in for inference, while
// declared types and overrides still take precedence.
func buildTypedTable(names []string, cols [][]interface{}, types []frame.DataType, o *options) (*frame.Table, error) {
	resolved, err := schema.Resolve(names, o.schema, o.overrides, func(i int, name string) (frame.DataType, error) {
		return types[i], nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]*frame.Column, resolved.Len())
	for i := 0; i < resolved.Len(); i++ {
		f := resolved.Field(i)
		col, err := frame.NewColumn(f.Name, f.Type, cols[i])
		if err != nil {
			return nil, err
		}
		out[i] = col
	}
	return frame.NewTable(out...)
}

// resolveSingle reconciles the name and type of a single-column result:
// an optional declared name (count-checked), then override > source
// type. Placeholder generation does not apply; the default name is the
// empty string.
func resolveSingle(name string, sourceType frame.DataType, o *options) (string, frame.DataType, error) {
	if o.schema.Len() > 0 {
		if o.schema.Len() != 1 {
			return "", frame.TypeNull, errors.SchemaLengthMismatch(o.schema.Len(), 1)
		}
		f := o.schema.Field(0)
		if f.Name != "" {
			name = f.Name
		}
		if f.Type != frame.TypeNull {
			sourceType = f.Type
		}
	}

	t := sourceType
	for key, override := range o.overrides {
		if key != name {
			return "", frame.TypeNull, errors.UnknownOverride(key, []string{name})
		}
		t = override
	}
	return name, t, nil
}
