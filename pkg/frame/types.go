// Package frame provides the columnar storage engine consumed by the
// construction layer: typed column buffers with validity bitmaps, and the
// table built from them. Construction code reaches this package only
// through NewColumn and NewTable.
package frame

// DataType represents the concrete data type of a column
type DataType int

const (
	// TypeNull is the unknown/null placeholder type. A column whose
	// sampled values are all null resolves to TypeNull; in a declared
	// schema it means "unspecified, infer".
	TypeNull DataType = iota
	// TypeBool stores booleans bit-packed
	TypeBool
	// TypeInt64 stores 64-bit signed integers
	TypeInt64
	// TypeFloat64 stores 64-bit floats
	TypeFloat64
	// TypeString stores UTF-8 text with dictionary encoding for
	// repetitive columns
	TypeString
	// TypeTimestamp stores instants with nanosecond precision
	TypeTimestamp
	// TypeBytes stores opaque byte blobs
	TypeBytes
	// TypeJSON stores nested mappings and sequences as canonical JSON
	TypeJSON
)

var typeNames = map[DataType]string{
	TypeNull:      "null",
	TypeBool:      "bool",
	TypeInt64:     "int64",
	TypeFloat64:   "float64",
	TypeString:    "string",
	TypeTimestamp: "timestamp",
	TypeBytes:     "bytes",
	TypeJSON:      "json",
}

func (t DataType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "invalid"
}

// Field pairs a column name with its concrete type
type Field struct {
	Name string
	Type DataType
}

// Data is the closed result sum of a construction call: either a whole
// *Table or a single named *Column. No other implementations exist.
type Data interface {
	isData()
}
