package schema

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/strataframe/strata/pkg/errors"
	"github.com/strataframe/strata/pkg/frame"
)

// Infer determines the single data type for a column from at most limit
// leading raw values. A limit <= 0 scans the full column, which can be
// slow for long columns. Nulls are skipped for typing but still count
// toward the scanned window. An empty or all-null sample resolves to
// frame.TypeNull, later fixable by a declared type or an override.
//
// Mixed value kinds widen along a fixed lattice (see Unify); two kinds
// outside the lattice fail with an inference error naming the column,
// the conflicting kinds and the row index of the later value.
func Infer(name string, values []interface{}, limit int) (frame.DataType, error) {
	if limit <= 0 || limit > len(values) {
		limit = len(values)
	}

	result := frame.TypeNull
	firstRow := -1
	for i := 0; i < limit; i++ {
		if values[i] == nil {
			continue
		}
		kind, err := kindOf(name, values[i], i)
		if err != nil {
			return frame.TypeNull, err
		}
		unified, ok := Unify(result, kind)
		if !ok {
			return frame.TypeNull, errors.InferenceConflict(
				name, result.String(), kind.String(), i).
				WithDetail("first_row", firstRow)
		}
		if firstRow < 0 {
			firstRow = i
		}
		result = unified
	}
	return result, nil
}

// Unify merges two data types along the widening lattice:
//
//	null  + T      = T
//	T     + T      = T
//	int64 + float64 = float64
//	{bool, int64, float64, timestamp} + string = string
//
// Text is the last resort for otherwise irreconcilable scalar mixes;
// every other pair (bool×numeric, timestamp×numeric, bytes×anything,
// json×anything) is a conflict.
func Unify(a, b frame.DataType) (frame.DataType, bool) {
	if a == b {
		return a, true
	}
	if a == frame.TypeNull {
		return b, true
	}
	if b == frame.TypeNull {
		return a, true
	}
	if (a == frame.TypeInt64 && b == frame.TypeFloat64) ||
		(a == frame.TypeFloat64 && b == frame.TypeInt64) {
		return frame.TypeFloat64, true
	}
	if a == frame.TypeString && textRepresentable(b) {
		return frame.TypeString, true
	}
	if b == frame.TypeString && textRepresentable(a) {
		return frame.TypeString, true
	}
	return frame.TypeNull, false
}

func textRepresentable(t frame.DataType) bool {
	switch t {
	case frame.TypeBool, frame.TypeInt64, frame.TypeFloat64, frame.TypeTimestamp:
		return true
	default:
		return false
	}
}

// kindOf maps a single raw value to its data type. Nested mappings and
// sequences land on TypeJSON; a value outside every recognized kind is
// an inference error.
func kindOf(column string, v interface{}, row int) (frame.DataType, error) {
	switch x := v.(type) {
	case bool:
		return frame.TypeBool, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return frame.TypeInt64, nil
	case float32, float64:
		return frame.TypeFloat64, nil
	case string:
		return frame.TypeString, nil
	case time.Time:
		return frame.TypeTimestamp, nil
	case []byte:
		return frame.TypeBytes, nil
	case json.Number:
		// integers first: "1" should stay integral, "1.5" widens
		if _, err := x.Int64(); err == nil {
			return frame.TypeInt64, nil
		}
		return frame.TypeFloat64, nil
	case json.RawMessage:
		return frame.TypeJSON, nil
	case map[string]interface{}, []interface{}:
		return frame.TypeJSON, nil
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return frame.TypeJSON, nil
	}

	return frame.TypeNull, errors.Newf(errors.ErrorTypeInference,
		"column %q: cannot infer a type from value of type %T at row %d",
		column, v, row).
		WithDetail("column", column).
		WithDetail("row", row)
}
