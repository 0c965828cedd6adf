// Package schema provides the schema-resolution kernel of the
// construction layer: declared schema forms, user override types, type
// inference over sampled raw values, and the reconciler that merges all
// three into the final resolved schema.
package schema

import (
	"github.com/strataframe/strata/pkg/frame"
)

// Declared is an ordered, optionally-typed column schema supplied by the
// caller. A frame.TypeNull entry means "name only, infer the type".
type Declared struct {
	fields []frame.Field
}

// DeclareNames builds a declared schema from names only; all types are
// left unspecified.
func DeclareNames(names ...string) *Declared {
	d := &Declared{fields: make([]frame.Field, len(names))}
	for i, name := range names {
		d.fields[i] = frame.Field{Name: name, Type: frame.TypeNull}
	}
	return d
}

// Declare builds a declared schema from (name, type) pairs.
func Declare(fields ...frame.Field) *Declared {
	d := &Declared{fields: make([]frame.Field, len(fields))}
	copy(d.fields, fields)
	return d
}

// NewDeclared returns an empty declared schema for incremental building.
// This is the ordered stand-in for a name→type mapping, since Go maps
// carry no order.
func NewDeclared() *Declared {
	return &Declared{}
}

// Add appends one (name, type) entry and returns the schema for chaining.
func (d *Declared) Add(name string, t frame.DataType) *Declared {
	d.fields = append(d.fields, frame.Field{Name: name, Type: t})
	return d
}

// Len returns the number of declared columns; nil-safe.
func (d *Declared) Len() int {
	if d == nil {
		return 0
	}
	return len(d.fields)
}

// Field returns the declared entry at position i.
func (d *Declared) Field(i int) frame.Field { return d.fields[i] }

// Names returns the declared names in order.
func (d *Declared) Names() []string {
	names := make([]string, len(d.fields))
	for i, f := range d.fields {
		names[i] = f.Name
	}
	return names
}

// Overrides maps a column name to a type that takes precedence over any
// declared or inferred type. Every key must match a column in the final
// schema; unmatched keys fail resolution.
type Overrides map[string]frame.DataType
