package pgtypes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
	"github.com/francipvb/pgdialect-go/pgdialect/pgtypes"
)

func roundTripRange(t *testing.T, m *pgtypes.Map, value pgtypes.Range) pgtypes.Range {
	t.Helper()

	codec := m.Lookup(pgtypes.KindRange)

	native, err := codec.Encode(value)
	require.NoError(t, err)

	decoded, err := codec.Decode(native)
	require.NoError(t, err)

	result, ok := decoded.(pgtypes.Range)
	require.True(t, ok, "decoded value is not a range: %T", decoded)

	return result
}

func Test_RangeCodec_RoundTrips(t *testing.T) {
	m := pgtypes.NewMap()

	tests := []struct {
		name  string
		value pgtypes.Range
	}{
		{
			name:  "empty_range",
			value: pgtypes.EmptyRange(),
		},
		{
			name:  "bounded_finite_range",
			value: pgtypes.Range{Lower: 1, Upper: 10, Bounds: "[)"},
		},
		{
			name:  "unbounded_upper_range",
			value: pgtypes.Range{Lower: 5, Bounds: "[)"},
		},
		{
			name:  "unbounded_lower_range",
			value: pgtypes.Range{Upper: 100, Bounds: "(]"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := roundTripRange(t, m, tc.value)

			assert.Equal(t, tc.value.Lower, result.Lower)
			assert.Equal(t, tc.value.Upper, result.Upper)
			assert.Equal(t, tc.value.Bounds, result.Bounds)
			assert.Equal(t, tc.value.Empty, result.Empty)
		})
	}
}

func Test_RangeCodec_NativeWithoutBoundsDecodesAsCanonicalEmpty(t *testing.T) {
	codec := pgtypes.NewMap().Lookup(pgtypes.KindRange)

	decoded, err := codec.Decode(driverapi.NativeRange{})
	require.NoError(t, err)

	result, ok := decoded.(pgtypes.Range)
	require.True(t, ok)

	assert.True(t, result.Empty)
	assert.Equal(t, "[)", result.Bounds)
	assert.Nil(t, result.Lower)
	assert.Nil(t, result.Upper)
}

func Test_RangeCodec_PassesThroughLiteralsAndNil(t *testing.T) {
	codec := pgtypes.NewMap().Lookup(pgtypes.KindRange)

	encoded, err := codec.Encode("[1,10)")
	require.NoError(t, err)
	assert.Equal(t, "[1,10)", encoded)

	encoded, err = codec.Encode(nil)
	require.NoError(t, err)
	assert.Nil(t, encoded)

	decoded, err := codec.Decode(nil)
	require.NoError(t, err)
	assert.Nil(t, decoded)
}

func Test_RangeCodec_RejectsForeignTypes(t *testing.T) {
	codec := pgtypes.NewMap().Lookup(pgtypes.KindRange)

	_, err := codec.Encode(42)
	assert.ErrorIs(t, err, pgtypes.ErrInvalidRangeValue)

	_, err = codec.Decode(42)
	assert.ErrorIs(t, err, pgtypes.ErrInvalidRangeValue)
}

func Test_MultirangeCodec_RoundTripsOrderedSequence(t *testing.T) {
	codec := pgtypes.NewMap().Lookup(pgtypes.KindMultirange)

	value := pgtypes.Multirange{
		{Lower: 1, Upper: 3, Bounds: "[)"},
		pgtypes.EmptyRange(),
		{Lower: 10, Bounds: "[)"},
	}

	native, err := codec.Encode(value)
	require.NoError(t, err)

	decoded, err := codec.Decode(native)
	require.NoError(t, err)

	result, ok := decoded.(pgtypes.Multirange)
	require.True(t, ok)
	require.Len(t, result, 3)

	assert.Equal(t, value[0], result[0])
	assert.Equal(t, value[1], result[1])
	assert.Equal(t, value[2], result[2])
}

func Test_MultirangeCodec_EmptySequence(t *testing.T) {
	codec := pgtypes.NewMap().Lookup(pgtypes.KindMultirange)

	native, err := codec.Encode(pgtypes.Multirange{})
	require.NoError(t, err)

	decoded, err := codec.Decode(native)
	require.NoError(t, err)

	assert.Empty(t, decoded)
}
