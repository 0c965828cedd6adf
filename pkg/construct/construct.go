// Package construct is the construction entry surface of Strata: it
// converts heterogeneous external representations — mappings of
// sequences, sequences of row mappings, sequences of sequences, numeric
// matrices, Arrow tables/records/arrays, and gota frames/series — into a
// frame.Table or a single named frame.Column.
//
// The dispatcher classifies the input's runtime type into a closed
// InputKind enumeration and routes it to exactly one adapter; a value
// outside every recognized family fails with an unsupported-input error
// naming the offending type. Schema resolution (orientation, inference,
// declared/override reconciliation) is shared across adapters.
package construct

import (
	"reflect"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/strataframe/strata/pkg/errors"
	"github.com/strataframe/strata/pkg/frame"
	"github.com/strataframe/strata/pkg/metrics"
)

// InputKind is the closed enumeration of recognized input families. The
// dispatcher branches on it exhaustively; adding a family means adding a
// variant here and one adapter.
type InputKind int

const (
	// KindUnknown matches no recognized family
	KindUnknown InputKind = iota
	// KindMapping is a name → sequence/column mapping
	KindMapping
	// KindRowMappings is a sequence of name → value rows
	KindRowMappings
	// KindRowSequences is a sequence of sequences
	KindRowSequences
	// KindMatrix is a two-dimensional numeric buffer
	KindMatrix
	// KindArrowTable is a whole Arrow table
	KindArrowTable
	// KindArrowRecord is an Arrow record batch
	KindArrowRecord
	// KindArrowArray is a single Arrow array
	KindArrowArray
	// KindArrowChunked is a chunked Arrow array
	KindArrowChunked
	// KindFrame is a gota data frame
	KindFrame
	// KindSeries is a gota series
	KindSeries
	// KindTimeIndex is a plain date index ([]time.Time)
	KindTimeIndex
)

var kindNames = map[InputKind]string{
	KindUnknown:      "unknown",
	KindMapping:      "mapping",
	KindRowMappings:  "row_mappings",
	KindRowSequences: "row_sequences",
	KindMatrix:       "matrix",
	KindArrowTable:   "arrow_table",
	KindArrowRecord:  "arrow_record",
	KindArrowArray:   "arrow_array",
	KindArrowChunked: "arrow_chunked",
	KindFrame:        "frame",
	KindSeries:       "series",
	KindTimeIndex:    "time_index",
}

func (k InputKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// KindOf classifies a value into its input family. Concrete foreign
// types are checked first; map and slice shapes that are not the
// canonical map[string]any / []map[string]any / [][]any are boxed via
// reflection.
func KindOf(v interface{}) InputKind {
	switch v.(type) {
	case map[string]interface{}:
		return KindMapping
	case []map[string]interface{}:
		return KindRowMappings
	case [][]interface{}:
		return KindRowSequences
	case arrow.Table:
		return KindArrowTable
	case arrow.Record:
		return KindArrowRecord
	case *arrow.Chunked:
		return KindArrowChunked
	case arrow.Array:
		return KindArrowArray
	case dataframe.DataFrame, *dataframe.DataFrame:
		return KindFrame
	case series.Series, *series.Series:
		return KindSeries
	case []time.Time:
		return KindTimeIndex
	}

	if _, ok := v.(mat.Matrix); ok {
		return KindMatrix
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return KindMapping
		}
	case reflect.Slice, reflect.Array:
		elem := rv.Type().Elem()
		switch elem.Kind() {
		case reflect.Map:
			if elem.Key().Kind() == reflect.String {
				return KindRowMappings
			}
		case reflect.Slice, reflect.Array:
			// []byte rows are blobs, not sequences
			if elem.Elem().Kind() != reflect.Uint8 {
				return KindRowSequences
			}
		}
	}

	return KindUnknown
}

// From is the single construction entry point: it classifies v and
// forwards to the matching adapter. Whole-table shapes return a
// *frame.Table, single-column shapes (Arrow array/chunked, gota series,
// date index) a *frame.Column. A value outside every family fails with
// an unsupported-input error; no other side effects occur.
func From(v interface{}, opts ...Option) (frame.Data, error) {
	o := applyOptions(opts)
	kind := KindOf(v)

	var (
		data frame.Data
		err  error
	)
	switch kind {
	case KindMapping:
		data, err = FromMap(asMapping(v), opts...)
	case KindRowMappings:
		data, err = FromRows(asRowMappings(v), opts...)
	case KindRowSequences:
		data, err = FromRecords(v, opts...)
	case KindMatrix:
		data, err = FromMatrix(v.(mat.Matrix), opts...)
	case KindArrowTable, KindArrowRecord, KindArrowArray, KindArrowChunked:
		data, err = FromArrow(v, opts...)
	case KindFrame, KindSeries, KindTimeIndex:
		data, err = FromGota(v, opts...)
	default:
		err = errors.UnsupportedInput(v)
	}

	metrics.RecordConstruction(kind.String(), err)
	if err != nil {
		return nil, err
	}
	rows := rowsOf(data)
	metrics.RecordRows(kind.String(), rows)
	o.logger.Debug("constructed",
		zap.String("kind", kind.String()),
		zap.Int("rows", rows))
	return data, nil
}

func rowsOf(data frame.Data) int {
	switch d := data.(type) {
	case *frame.Table:
		return d.NumRows()
	case *frame.Column:
		return d.Len()
	default:
		return 0
	}
}

// asMapping boxes any string-keyed map into the canonical mapping shape.
func asMapping(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	rv := reflect.ValueOf(v)
	out := make(map[string]interface{}, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out
}

// asRowMappings boxes any slice of string-keyed maps into the canonical
// row-mapping shape.
func asRowMappings(v interface{}) []map[string]interface{} {
	if rows, ok := v.([]map[string]interface{}); ok {
		return rows
	}
	rv := reflect.ValueOf(v)
	out := make([]map[string]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = asMapping(rv.Index(i).Interface())
	}
	return out
}

// asSequence boxes any slice or array into []interface{}. Returns false
// for non-sequence values.
func asSequence(v interface{}) ([]interface{}, bool) {
	if s, ok := v.([]interface{}); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}
