// Package json provides high-performance JSON serialization with buffer
// pooling, plus row decoding used by the construction layer and CLI.
package json

import (
	"bytes"
	"io"
	"sync"

	gojson "github.com/goccy/go-json"

	"github.com/strataframe/strata/pkg/errors"
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

// GetBuffer gets a pooled bytes.Buffer
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the pool
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 1024*1024 { // don't pool very large buffers
		return
	}
	bufferPool.Put(buf)
}

// Marshal is a high-performance drop-in replacement for json.Marshal
func Marshal(v interface{}) ([]byte, error) {
	return gojson.Marshal(v)
}

// Unmarshal is a high-performance drop-in replacement for json.Unmarshal
func Unmarshal(data []byte, v interface{}) error {
	return gojson.Unmarshal(data, v)
}

// Canonical marshals v and returns the encoded bytes, used to normalize
// nested mappings and sequences into JSON column values.
func Canonical(v interface{}) ([]byte, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	enc := gojson.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "encode json value")
	}
	// Encode appends a trailing newline
	out := bytes.TrimRight(buf.Bytes(), "\n")
	cp := make([]byte, len(out))
	copy(cp, out)
	return cp, nil
}

// DecodeRows decodes a stream of JSON row objects into the shape the
// sequence-of-mappings adapter accepts. Both a single top-level array of
// objects and newline-delimited objects are accepted. Numbers decode as
// json.Number so integer columns infer as integers rather than floats.
func DecodeRows(r io.Reader) ([]map[string]interface{}, error) {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "decode rows")
	}

	var rows []map[string]interface{}
	if delim, ok := tok.(gojson.Delim); ok && delim == '[' {
		for dec.More() {
			var row map[string]interface{}
			if err := dec.Decode(&row); err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeData, "decode row object")
			}
			rows = append(rows, row)
		}
		if _, err := dec.Token(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "decode rows")
		}
		return rows, nil
	}

	// Newline-delimited objects: the first token was '{', so re-read from
	// the concatenated stream with a fresh decoder.
	if delim, ok := tok.(gojson.Delim); !ok || delim != '{' {
		return nil, errors.New(errors.ErrorTypeData, "rows input must be an array or stream of objects")
	}
	first := map[string]interface{}{}
	for dec.More() {
		var key string
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "decode row object")
		}
		key = tok.(string)
		var val interface{}
		if err := dec.Decode(&val); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "decode row object")
		}
		first[key] = val
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, errors.Wrap(err, errors.ErrorTypeData, "decode row object")
	}
	rows = append(rows, first)

	for {
		var row map[string]interface{}
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "decode row object")
		}
		rows = append(rows, row)
	}
	return rows, nil
}
