package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataframe/strata/pkg/errors"
	"github.com/strataframe/strata/pkg/frame"
)

func TestInferScalarKinds(t *testing.T) {
	tests := []struct {
		name   string
		values []interface{}
		want   frame.DataType
	}{
		{"ints", []interface{}{1, 2, 3}, frame.TypeInt64},
		{"int widths", []interface{}{int8(1), int32(2), uint16(3)}, frame.TypeInt64},
		{"floats", []interface{}{0.5, float32(1.5)}, frame.TypeFloat64},
		{"bools", []interface{}{true, false}, frame.TypeBool},
		{"strings", []interface{}{"a", "b"}, frame.TypeString},
		{"timestamps", []interface{}{time.Now(), time.Now()}, frame.TypeTimestamp},
		{"bytes", []interface{}{[]byte("x")}, frame.TypeBytes},
		{"nested mapping", []interface{}{map[string]interface{}{"k": 1}}, frame.TypeJSON},
		{"nested sequence", []interface{}{[]interface{}{1, 2}}, frame.TypeJSON},
		{"typed nested slice", []interface{}{[]int{1, 2}}, frame.TypeJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Infer("c", tt.values, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInferWidening(t *testing.T) {
	got, err := Infer("c", []interface{}{1, 2.5, 3}, 0)
	require.NoError(t, err)
	assert.Equal(t, frame.TypeFloat64, got)

	// text is the last resort for scalar mixes
	got, err = Infer("c", []interface{}{1, "x"}, 0)
	require.NoError(t, err)
	assert.Equal(t, frame.TypeString, got)

	got, err = Infer("c", []interface{}{true, "yes"}, 0)
	require.NoError(t, err)
	assert.Equal(t, frame.TypeString, got)
}

func TestInferAllNull(t *testing.T) {
	got, err := Infer("c", []interface{}{nil, nil, nil}, 0)
	require.NoError(t, err)
	assert.Equal(t, frame.TypeNull, got)

	got, err = Infer("c", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, frame.TypeNull, got)
}

func TestInferNullsSkipped(t *testing.T) {
	got, err := Infer("c", []interface{}{nil, 1, nil, 2}, 0)
	require.NoError(t, err)
	assert.Equal(t, frame.TypeInt64, got)
}

func TestInferConflictNamesRow(t *testing.T) {
	_, err := Infer("flags", []interface{}{1, true}, 0)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInference))

	var structured *errors.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, 1, structured.Detail("row"))
	assert.Contains(t, err.Error(), "flags")
}

func TestInferLimitBoundsScan(t *testing.T) {
	// the conflicting bool sits beyond the scan window
	values := []interface{}{1, 2, 3, true}
	got, err := Infer("c", values, 3)
	require.NoError(t, err)
	assert.Equal(t, frame.TypeInt64, got)

	_, err = Infer("c", values, 0)
	require.Error(t, err)
}

func TestUnifyLattice(t *testing.T) {
	tests := []struct {
		a, b frame.DataType
		want frame.DataType
		ok   bool
	}{
		{frame.TypeNull, frame.TypeInt64, frame.TypeInt64, true},
		{frame.TypeInt64, frame.TypeNull, frame.TypeInt64, true},
		{frame.TypeInt64, frame.TypeInt64, frame.TypeInt64, true},
		{frame.TypeInt64, frame.TypeFloat64, frame.TypeFloat64, true},
		{frame.TypeFloat64, frame.TypeInt64, frame.TypeFloat64, true},
		{frame.TypeString, frame.TypeInt64, frame.TypeString, true},
		{frame.TypeTimestamp, frame.TypeString, frame.TypeString, true},
		{frame.TypeBool, frame.TypeString, frame.TypeString, true},
		{frame.TypeBool, frame.TypeInt64, frame.TypeNull, false},
		{frame.TypeTimestamp, frame.TypeInt64, frame.TypeNull, false},
		{frame.TypeBytes, frame.TypeString, frame.TypeNull, false},
		{frame.TypeJSON, frame.TypeString, frame.TypeNull, false},
	}

	for _, tt := range tests {
		got, ok := Unify(tt.a, tt.b)
		assert.Equal(t, tt.ok, ok, "%s + %s", tt.a, tt.b)
		if ok {
			assert.Equal(t, tt.want, got, "%s + %s", tt.a, tt.b)
		}
	}
}
