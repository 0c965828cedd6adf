package construct

import (
	"math"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/strataframe/strata/pkg/errors"
	"github.com/strataframe/strata/pkg/frame"
)

// FromGota constructs from the row-labeled family: a gota DataFrame
// produces a *frame.Table, a gota Series or a plain date index
// ([]time.Time) a *frame.Column. Values always copy.
//
// gota marks missing entries with NA (NaN on float series). With missing
// conversion enabled (the default) those become internal nulls before
// typing; disabled, a float NA stays a NaN value while non-float NA —
// which has no in-band representation — still becomes null.
func FromGota(v interface{}, opts ...Option) (frame.Data, error) {
	o := applyOptions(opts)

	switch x := v.(type) {
	case dataframe.DataFrame:
		return gotaFrame(x, o)
	case *dataframe.DataFrame:
		return gotaFrame(*x, o)
	case series.Series:
		return gotaSeries(x, o)
	case *series.Series:
		return gotaSeries(*x, o)
	case []time.Time:
		values := make([]interface{}, len(x))
		for i, ts := range x {
			values[i] = ts
		}
		name, t, err := resolveSingle("", frame.TypeTimestamp, o)
		if err != nil {
			return nil, err
		}
		return frame.NewColumn(name, t, values)
	default:
		return nil, errors.UnsupportedInput(v)
	}
}

func gotaFrame(df dataframe.DataFrame, o *options) (*frame.Table, error) {
	if err := df.Error(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "source frame is invalid")
	}

	names := df.Names()
	cols := make([][]interface{}, len(names))
	types := make([]frame.DataType, len(names))
	for i, name := range names {
		s := df.Col(name)
		cols[i] = seriesValues(s, o.convertMissing)
		types[i] = seriesType(s)
	}
	return buildTypedTable(names, cols, types, o)
}

func gotaSeries(s series.Series, o *options) (*frame.Column, error) {
	if s.Err != nil {
		return nil, errors.Wrap(s.Err, errors.ErrorTypeData, "source series is invalid")
	}

	name, t, err := resolveSingle(s.Name, seriesType(s), o)
	if err != nil {
		return nil, err
	}
	return frame.NewColumn(name, t, seriesValues(s, o.convertMissing))
}

func seriesType(s series.Series) frame.DataType {
	switch s.Type() {
	case series.Int:
		return frame.TypeInt64
	case series.Float:
		return frame.TypeFloat64
	case series.Bool:
		return frame.TypeBool
	default:
		return frame.TypeString
	}
}

func seriesValues(s series.Series, convertMissing bool) []interface{} {
	isFloat := s.Type() == series.Float
	values := make([]interface{}, s.Len())
	for i := range values {
		elem := s.Elem(i)
		if elem.IsNA() {
			if !convertMissing && isFloat {
				values[i] = math.NaN()
			}
			// else: nil, the internal null
			continue
		}
		values[i] = elem.Val()
	}
	return values
}
