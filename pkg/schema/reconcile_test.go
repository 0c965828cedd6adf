package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataframe/strata/pkg/errors"
	"github.com/strataframe/strata/pkg/frame"
)

func inferFixed(types ...frame.DataType) InferFunc {
	return func(i int, name string) (frame.DataType, error) {
		return types[i], nil
	}
}

func TestResolvePrecedence(t *testing.T) {
	declared := Declare(
		frame.Field{Name: "a", Type: frame.TypeString},
		frame.Field{Name: "b", Type: frame.TypeNull}, // infer
		frame.Field{Name: "c", Type: frame.TypeInt64},
	)
	ov := Overrides{"c": frame.TypeFloat64}

	resolved, err := Resolve([]string{"x", "y", "z"}, declared, ov,
		inferFixed(frame.TypeBool, frame.TypeInt64, frame.TypeBool))
	require.NoError(t, err)

	// declared names replace adapter names positionally
	assert.Equal(t, []string{"a", "b", "c"}, resolved.Names())
	// a: declared beats inferred; b: inferred; c: override beats declared
	assert.Equal(t, frame.TypeString, resolved.Field(0).Type)
	assert.Equal(t, frame.TypeInt64, resolved.Field(1).Type)
	assert.Equal(t, frame.TypeFloat64, resolved.Field(2).Type)
}

func TestResolveInferOnlyWhenNeeded(t *testing.T) {
	called := 0
	infer := func(i int, name string) (frame.DataType, error) {
		called++
		return frame.TypeInt64, nil
	}

	declared := Declare(
		frame.Field{Name: "a", Type: frame.TypeString},
		frame.Field{Name: "b", Type: frame.TypeNull},
	)
	_, err := Resolve([]string{"", ""}, declared, Overrides{"a": frame.TypeBytes}, infer)
	require.NoError(t, err)
	// a is overridden and declared; only b needs inference
	assert.Equal(t, 1, called)
}

func TestResolvePlaceholderNames(t *testing.T) {
	resolved, err := Resolve([]string{"", "", ""}, nil, nil,
		inferFixed(frame.TypeInt64, frame.TypeInt64, frame.TypeInt64))
	require.NoError(t, err)
	assert.Equal(t, []string{"column_0", "column_1", "column_2"}, resolved.Names())
}

func TestResolveLengthMismatch(t *testing.T) {
	_, err := Resolve([]string{"", ""}, DeclareNames("a", "b", "c"), nil,
		inferFixed(frame.TypeInt64, frame.TypeInt64))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeSchemaLength))

	var structured *errors.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, 3, structured.Detail("declared"))
	assert.Equal(t, 2, structured.Detail("actual"))
}

func TestResolveUnknownOverride(t *testing.T) {
	_, err := Resolve([]string{"a", "b"}, nil, Overrides{"nonexistent": frame.TypeInt64},
		inferFixed(frame.TypeInt64, frame.TypeInt64))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnknownOverride))
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestResolveOverrideMatchesFinalNames(t *testing.T) {
	// the override key targets the declared (renamed) column, not the
	// adapter-produced name
	resolved, err := Resolve([]string{"orig"}, DeclareNames("renamed"),
		Overrides{"renamed": frame.TypeFloat64},
		inferFixed(frame.TypeInt64))
	require.NoError(t, err)
	assert.Equal(t, frame.TypeFloat64, resolved.Field(0).Type)

	_, err = Resolve([]string{"orig"}, DeclareNames("renamed"),
		Overrides{"orig": frame.TypeFloat64},
		inferFixed(frame.TypeInt64))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnknownOverride))
}

func TestResolveDuplicateNames(t *testing.T) {
	_, err := Resolve([]string{"a", "a"}, nil, nil,
		inferFixed(frame.TypeInt64, frame.TypeInt64))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
}

func TestResolveInferErrorPropagates(t *testing.T) {
	boom := errors.InferenceConflict("a", "int64", "bool", 4)
	_, err := Resolve([]string{"a"}, nil, nil,
		func(i int, name string) (frame.DataType, error) { return frame.TypeNull, boom })
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInference))
}

func TestDeclaredBuilder(t *testing.T) {
	d := NewDeclared().Add("a", frame.TypeInt64).Add("b", frame.TypeNull)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []string{"a", "b"}, d.Names())
	assert.Equal(t, frame.TypeInt64, d.Field(0).Type)

	var nilDeclared *Declared
	assert.Equal(t, 0, nilDeclared.Len())
}
