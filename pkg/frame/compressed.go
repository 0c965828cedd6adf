package frame

import (
	"bytes"
	"encoding/base64"
	"encoding/json"

	gojson "github.com/goccy/go-json"

	"github.com/strataframe/strata/pkg/compression"
	"github.com/strataframe/strata/pkg/errors"
	strjson "github.com/strataframe/strata/pkg/json"
)

// CompressedTable is a memory-resident snapshot of a table with each
// column's values serialized and compressed independently. Intended for
// parking cold tables; Decompress rebuilds a live Table.
type CompressedTable struct {
	fields []Field
	rows   int
	blobs  [][]byte
	comp   compression.Compressor
}

// Compress snapshots a table using the given compression configuration.
// A nil config selects the package default (Snappy).
func Compress(t *Table, cfg *compression.Config) (*CompressedTable, error) {
	comp, err := compression.NewCompressor(cfg)
	if err != nil {
		return nil, err
	}

	ct := &CompressedTable{
		fields: t.Fields(),
		rows:   t.NumRows(),
		blobs:  make([][]byte, t.NumColumns()),
		comp:   comp,
	}

	for i, col := range t.Columns() {
		encoded, err := strjson.Marshal(col.Values())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData,
				"encode column "+col.Name())
		}
		blob, err := comp.Compress(encoded)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData,
				"compress column "+col.Name())
		}
		ct.blobs[i] = blob
	}
	return ct, nil
}

// Fields returns the ordered schema of the snapshot
func (ct *CompressedTable) Fields() []Field { return ct.fields }

// NumRows returns the row count of the snapshot
func (ct *CompressedTable) NumRows() int { return ct.rows }

// CompressedBytes returns the total size of the compressed blobs
func (ct *CompressedTable) CompressedBytes() int64 {
	var total int64
	for _, b := range ct.blobs {
		total += int64(len(b))
	}
	return total
}

// Decompress rebuilds a live table from the snapshot
func (ct *CompressedTable) Decompress() (*Table, error) {
	cols := make([]*Column, len(ct.fields))
	for i, f := range ct.fields {
		raw, err := ct.comp.Decompress(ct.blobs[i])
		if err != nil {
			return nil, err
		}
		values, err := decodeColumnValues(f.Type, raw)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData,
				"decode column "+f.Name)
		}
		col, err := NewColumn(f.Name, f.Type, values)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return NewTable(cols...)
}

// decodeColumnValues restores a raw value slice from its JSON snapshot.
// Numbers decode as json.Number so int64 columns survive intact; bytes
// and JSON blobs were base64-encoded by Marshal and are restored here.
func decodeColumnValues(t DataType, raw []byte) ([]interface{}, error) {
	dec := gojson.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var values []interface{}
	if err := dec.Decode(&values); err != nil {
		return nil, err
	}

	if t == TypeBytes || t == TypeJSON {
		for i, v := range values {
			s, ok := v.(string)
			if !ok {
				continue
			}
			decoded, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, err
			}
			if t == TypeJSON {
				values[i] = json.RawMessage(decoded)
			} else {
				values[i] = decoded
			}
		}
	}
	return values, nil
}
