// Package strata provides the ingestion layer of a columnar data-table
// engine: it converts heterogeneous external representations into a
// table of named, typed columns or a single named typed column.
//
// Supported input families:
//   - mapping of column name to sequence, nested mapping, or typed column
//   - sequence of row mappings
//   - sequence of sequences, with row/column orientation resolution
//   - two-dimensional numeric buffers (gonum matrices)
//   - Apache Arrow tables, record batches, arrays and chunked arrays
//   - gota data frames, series, and plain date indexes
//
// # Architecture
//
// Construction flows through a single dispatcher that classifies the
// input's runtime type into a closed enumeration and routes it to
// exactly one source adapter. Adapters normalize their family into
// ordered column names plus per-column raw values; the schema kernel
// then infers a type per untyped column from a bounded sample, merges
// inferred, declared, and override types with precedence
// override > declared > inferred, and hands the result to the storage
// constructors.
//
// # Quick Start
//
//	import (
//	    "github.com/strataframe/strata/pkg/construct"
//	    "github.com/strataframe/strata/pkg/frame"
//	    "github.com/strataframe/strata/pkg/schema"
//	)
//
//	table, err := construct.FromMap(map[string]interface{}{
//	    "id":    []interface{}{1, 2, 3},
//	    "score": []interface{}{0.5, nil, 0.75},
//	}, construct.WithOverrides(schema.Overrides{"id": frame.TypeInt64}))
//
// Construction is synchronous and pure: one call produces one fully
// materialized result or fails with a structured, inspectable error.
// Adapters never mutate their input, so concurrent calls over the same
// source are safe.
package strata
