package frame

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/strataframe/strata/pkg/errors"
	strjson "github.com/strataframe/strata/pkg/json"
)

// buffer is the typed storage behind a Column. Implementations coerce raw
// values on append and report a data error on mismatch or overflow.
type buffer interface {
	len() int
	get(i int) interface{}
	append(v interface{}) error
	// appendZero appends a placeholder slot for a null entry; the
	// column's validity bitmap masks it on read.
	appendZero()
	memory() int64
}

func coerceErr(want DataType, v interface{}) error {
	return errors.Newf(errors.ErrorTypeData, "expected %s, got %T (%v)", want, v, v)
}

// nullBuffer backs TypeNull columns: it stores no values at all, only a
// length. Every slot is null by definition.
type nullBuffer struct {
	n int
}

func (b *nullBuffer) len() int              { return b.n }
func (b *nullBuffer) get(int) interface{}   { return nil }
func (b *nullBuffer) appendZero()           { b.n++ }
func (b *nullBuffer) memory() int64         { return 8 }
func (b *nullBuffer) append(v interface{}) error {
	return coerceErr(TypeNull, v)
}

// int64Buffer stores integer values, tracking min/max for later encoding
// decisions.
type int64Buffer struct {
	values   []int64
	min, max int64
}

func newInt64Buffer() *int64Buffer {
	return &int64Buffer{values: make([]int64, 0, 1024)}
}

// adoptInt64Buffer wraps an existing value slice without copying. The
// three-index slice pins capacity to length so a later Append reallocates
// instead of growing into the source's memory.
func adoptInt64Buffer(vals []int64) *int64Buffer {
	return &int64Buffer{values: vals[:len(vals):len(vals)]}
}

func (b *int64Buffer) len() int            { return len(b.values) }
func (b *int64Buffer) get(i int) interface{} { return b.values[i] }
func (b *int64Buffer) appendZero()         { b.values = append(b.values, 0) }
func (b *int64Buffer) memory() int64       { return int64(len(b.values) * 8) }

func (b *int64Buffer) append(v interface{}) error {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int8:
		n = int64(x)
	case int16:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case uint:
		n = int64(x)
	case uint8:
		n = int64(x)
	case uint16:
		n = int64(x)
	case uint32:
		n = int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return errors.Newf(errors.ErrorTypeData, "uint64 value %d overflows int64", x)
		}
		n = int64(x)
	case float32:
		return b.appendFloat(float64(x))
	case float64:
		return b.appendFloat(x)
	case json.Number:
		parsed, err := x.Int64()
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "parse integer")
		}
		n = parsed
	default:
		return coerceErr(TypeInt64, v)
	}
	b.push(n)
	return nil
}

func (b *int64Buffer) appendFloat(f float64) error {
	if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return errors.Newf(errors.ErrorTypeData, "float value %v is not representable as int64", f)
	}
	b.push(int64(f))
	return nil
}

func (b *int64Buffer) push(n int64) {
	if len(b.values) == 0 {
		b.min, b.max = n, n
	} else {
		if n < b.min {
			b.min = n
		}
		if n > b.max {
			b.max = n
		}
	}
	b.values = append(b.values, n)
}

// float64Buffer stores floating point values
type float64Buffer struct {
	values []float64
}

func newFloat64Buffer() *float64Buffer {
	return &float64Buffer{values: make([]float64, 0, 1024)}
}

// adoptFloat64Buffer wraps an existing value slice without copying, with
// capacity pinned so appends cannot grow into the source.
func adoptFloat64Buffer(vals []float64) *float64Buffer {
	return &float64Buffer{values: vals[:len(vals):len(vals)]}
}

func (b *float64Buffer) len() int              { return len(b.values) }
func (b *float64Buffer) get(i int) interface{} { return b.values[i] }
func (b *float64Buffer) appendZero()           { b.values = append(b.values, 0) }
func (b *float64Buffer) memory() int64         { return int64(len(b.values) * 8) }

func (b *float64Buffer) append(v interface{}) error {
	var f float64
	switch x := v.(type) {
	case float32:
		f = float64(x)
	case float64:
		f = x
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "parse float")
		}
		f = parsed
	default:
		return coerceErr(TypeFloat64, v)
	}
	b.values = append(b.values, f)
	return nil
}

// stringBuffer stores text, switching to dictionary encoding once the
// column proves repetitive enough.
type stringBuffer struct {
	values    []string
	dict      map[string]uint32
	rev       []string
	codes     []uint32
	dictMode  bool
	threshold float64
}

func newStringBuffer() *stringBuffer {
	return &stringBuffer{
		values:    make([]string, 0, 1024),
		threshold: 0.5, // switch to dict when <50% of values are unique
	}
}

func (b *stringBuffer) len() int {
	if b.dictMode {
		return len(b.codes)
	}
	return len(b.values)
}

func (b *stringBuffer) get(i int) interface{} {
	if b.dictMode {
		return b.rev[b.codes[i]]
	}
	return b.values[i]
}

func (b *stringBuffer) appendZero() { b.pushString("") }

func (b *stringBuffer) append(v interface{}) error {
	s, err := stringify(v)
	if err != nil {
		return err
	}
	b.pushString(s)
	return nil
}

// stringify implements the text-as-last-resort widening: scalar primitives
// and timestamps render to their canonical text form.
func stringify(v interface{}) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.FormatInt(int64(x), 10), nil
	case int8:
		return strconv.FormatInt(int64(x), 10), nil
	case int16:
		return strconv.FormatInt(int64(x), 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 64), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case json.Number:
		return x.String(), nil
	case time.Time:
		return x.Format(time.RFC3339Nano), nil
	case []byte:
		return string(x), nil
	default:
		return "", coerceErr(TypeString, v)
	}
}

func (b *stringBuffer) pushString(s string) {
	if b.dictMode {
		code, exists := b.dict[s]
		if !exists {
			code = uint32(len(b.rev))
			b.dict[s] = code
			b.rev = append(b.rev, s)
		}
		b.codes = append(b.codes, code)
		return
	}

	b.values = append(b.values, s)
	if len(b.values) > 100 && b.shouldUseDictionary() {
		b.convertToDictionary()
	}
}

func (b *stringBuffer) shouldUseDictionary() bool {
	unique := make(map[string]struct{}, len(b.values))
	for _, v := range b.values {
		unique[v] = struct{}{}
	}
	ratio := float64(len(unique)) / float64(len(b.values))
	return ratio < b.threshold
}

func (b *stringBuffer) convertToDictionary() {
	b.dictMode = true
	b.dict = make(map[string]uint32)
	b.rev = b.rev[:0]
	b.codes = make([]uint32, 0, len(b.values))

	for _, v := range b.values {
		code, exists := b.dict[v]
		if !exists {
			code = uint32(len(b.rev))
			b.dict[v] = code
			b.rev = append(b.rev, v)
		}
		b.codes = append(b.codes, code)
	}

	b.values = nil
}

func (b *stringBuffer) memory() int64 {
	var total int64
	if b.dictMode {
		for _, k := range b.rev {
			total += int64(len(k)) + 4
		}
		total += int64(len(b.codes) * 4)
	} else {
		for _, v := range b.values {
			total += int64(len(v)) + 16 // string header overhead
		}
	}
	return total
}

// boolBuffer stores booleans bit-packed, 64 per word
type boolBuffer struct {
	words []uint64
	count int
}

func newBoolBuffer() *boolBuffer {
	return &boolBuffer{words: make([]uint64, 0, 16)}
}

func (b *boolBuffer) len() int { return b.count }

func (b *boolBuffer) get(i int) interface{} {
	return (b.words[i/64] & (1 << (i % 64))) != 0
}

func (b *boolBuffer) appendZero() { b.push(false) }

func (b *boolBuffer) append(v interface{}) error {
	switch x := v.(type) {
	case bool:
		b.push(x)
		return nil
	case string:
		parsed, err := strconv.ParseBool(x)
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "parse bool")
		}
		b.push(parsed)
		return nil
	default:
		return coerceErr(TypeBool, v)
	}
}

func (b *boolBuffer) push(v bool) {
	word := b.count / 64
	if word >= len(b.words) {
		b.words = append(b.words, 0)
	}
	if v {
		b.words[word] |= 1 << (b.count % 64)
	}
	b.count++
}

func (b *boolBuffer) memory() int64 { return int64(len(b.words) * 8) }

// timestampBuffer stores instants as UnixNano
type timestampBuffer struct {
	values []int64
}

func newTimestampBuffer() *timestampBuffer {
	return &timestampBuffer{values: make([]int64, 0, 1024)}
}

func (b *timestampBuffer) len() int { return len(b.values) }

func (b *timestampBuffer) get(i int) interface{} {
	return time.Unix(0, b.values[i]).UTC()
}

func (b *timestampBuffer) appendZero() { b.values = append(b.values, 0) }

func (b *timestampBuffer) append(v interface{}) error {
	switch x := v.(type) {
	case time.Time:
		b.values = append(b.values, x.UnixNano())
		return nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, x)
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "parse timestamp")
		}
		b.values = append(b.values, t.UnixNano())
		return nil
	default:
		return coerceErr(TypeTimestamp, v)
	}
}

func (b *timestampBuffer) memory() int64 { return int64(len(b.values) * 8) }

// bytesBuffer stores opaque blobs
type bytesBuffer struct {
	values [][]byte
	total  int64
}

func newBytesBuffer() *bytesBuffer {
	return &bytesBuffer{values: make([][]byte, 0, 256)}
}

func (b *bytesBuffer) len() int              { return len(b.values) }
func (b *bytesBuffer) get(i int) interface{} { return b.values[i] }
func (b *bytesBuffer) appendZero()           { b.values = append(b.values, nil) }
func (b *bytesBuffer) memory() int64         { return b.total }

func (b *bytesBuffer) append(v interface{}) error {
	var raw []byte
	switch x := v.(type) {
	case []byte:
		raw = make([]byte, len(x))
		copy(raw, x)
	case string:
		raw = []byte(x)
	default:
		return coerceErr(TypeBytes, v)
	}
	b.values = append(b.values, raw)
	b.total += int64(len(raw))
	return nil
}

// jsonBuffer stores nested values as canonical JSON bytes
type jsonBuffer struct {
	values [][]byte
	total  int64
}

func newJSONBuffer() *jsonBuffer {
	return &jsonBuffer{values: make([][]byte, 0, 256)}
}

func (b *jsonBuffer) len() int              { return len(b.values) }
func (b *jsonBuffer) get(i int) interface{} { return b.values[i] }
func (b *jsonBuffer) appendZero()           { b.values = append(b.values, nil) }
func (b *jsonBuffer) memory() int64         { return b.total }

func (b *jsonBuffer) append(v interface{}) error {
	var raw []byte
	switch x := v.(type) {
	case json.RawMessage:
		raw = make([]byte, len(x))
		copy(raw, x)
	case []byte:
		// already-canonical bytes, stored as-is
		raw = make([]byte, len(x))
		copy(raw, x)
	default:
		enc, err := strjson.Canonical(v)
		if err != nil {
			return err
		}
		raw = enc
	}
	b.values = append(b.values, raw)
	b.total += int64(len(raw))
	return nil
}

// newBuffer creates the typed buffer for a data type
func newBuffer(t DataType) buffer {
	switch t {
	case TypeBool:
		return newBoolBuffer()
	case TypeInt64:
		return newInt64Buffer()
	case TypeFloat64:
		return newFloat64Buffer()
	case TypeString:
		return newStringBuffer()
	case TypeTimestamp:
		return newTimestampBuffer()
	case TypeBytes:
		return newBytesBuffer()
	case TypeJSON:
		return newJSONBuffer()
	default:
		return &nullBuffer{}
	}
}
