package schema

import (
	"fmt"
	"sort"

	"github.com/strataframe/strata/pkg/errors"
	"github.com/strataframe/strata/pkg/frame"
)

// InferFunc supplies the inferred type for column i under its final
// name. The reconciler calls it only for columns with neither a declared
// nor an override type.
type InferFunc func(i int, name string) (frame.DataType, error)

// Resolved is the final ordered column-name → type mapping of one
// construction call. Immutable once built; it alone governs how raw
// values are coerced into storage.
type Resolved struct {
	fields []frame.Field
}

// Len returns the number of resolved columns
func (r *Resolved) Len() int { return len(r.fields) }

// Field returns the resolved entry at position i
func (r *Resolved) Field(i int) frame.Field { return r.fields[i] }

// Fields returns a copy of the ordered resolved schema
func (r *Resolved) Fields() []frame.Field {
	out := make([]frame.Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Names returns the resolved names in order
func (r *Resolved) Names() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}

// Resolve merges adapter-produced column names, an optional declared
// schema, and override types into the final schema, preserving column
// order. Precedence per column is override > declared > inferred.
//
// Declared names positionally replace adapter names and their count must
// match the actual column count. An empty adapter name with no declared
// replacement becomes a generated placeholder (column_0, column_1, ...).
// Override keys match against the final names; a leftover key fails with
// an unknown-override error.
func Resolve(names []string, declared *Declared, ov Overrides, infer InferFunc) (*Resolved, error) {
	n := len(names)
	if declared.Len() > 0 && declared.Len() != n {
		return nil, errors.SchemaLengthMismatch(declared.Len(), n)
	}

	final := make([]frame.Field, n)
	seen := make(map[string]int, n)
	for i := 0; i < n; i++ {
		name := names[i]
		declType := frame.TypeNull
		if declared.Len() > 0 {
			f := declared.Field(i)
			if f.Name != "" {
				name = f.Name
			}
			declType = f.Type
		}
		if name == "" {
			name = fmt.Sprintf("column_%d", i)
		}
		if prev, dup := seen[name]; dup {
			return nil, errors.Newf(errors.ErrorTypeData,
				"duplicate column name %q at positions %d and %d", name, prev, i)
		}
		seen[name] = i
		final[i] = frame.Field{Name: name, Type: declType}
	}

	used := make(map[string]struct{}, len(ov))
	for i := range final {
		if t, ok := ov[final[i].Name]; ok {
			final[i].Type = t
			used[final[i].Name] = struct{}{}
			continue
		}
		if final[i].Type != frame.TypeNull {
			continue
		}
		t, err := infer(i, final[i].Name)
		if err != nil {
			return nil, err
		}
		final[i].Type = t
	}

	if len(used) != len(ov) {
		leftover := make([]string, 0, len(ov))
		for key := range ov {
			if _, ok := used[key]; !ok {
				leftover = append(leftover, key)
			}
		}
		sort.Strings(leftover)
		known := make([]string, n)
		for i, f := range final {
			known[i] = f.Name
		}
		return nil, errors.UnknownOverride(leftover[0], known)
	}

	return &Resolved{fields: final}, nil
}
