package pgxclient

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
)

func Test_encodeArg_JSONBindsAsText(t *testing.T) {
	encoded := encodeArg(driverapi.JSONValue{Bytes: []byte(`{"a":1}`)})

	assert.Equal(t, `{"a":1}`, encoded)
}

func Test_encodeArg_PlainValuesPassThrough(t *testing.T) {
	assert.Equal(t, 42, encodeArg(42))
	assert.Equal(t, "text", encodeArg("text"))
	assert.Nil(t, encodeArg(nil))
}

func Test_toPgtypeRange(t *testing.T) {
	tests := []struct {
		name  string
		input driverapi.NativeRange
		want  pgtype.Range[any]
	}{
		{
			name:  "empty_range",
			input: driverapi.NativeRange{},
			want:  pgtype.Range[any]{LowerType: pgtype.Empty, UpperType: pgtype.Empty, Valid: true},
		},
		{
			name:  "inclusive_exclusive",
			input: driverapi.NativeRange{Lower: 1, Upper: 10, Bounds: "[)"},
			want: pgtype.Range[any]{
				Lower: 1, Upper: 10,
				LowerType: pgtype.Inclusive, UpperType: pgtype.Exclusive,
				Valid: true,
			},
		},
		{
			name:  "inclusive_both_sides",
			input: driverapi.NativeRange{Lower: 1, Upper: 10, Bounds: "[]"},
			want: pgtype.Range[any]{
				Lower: 1, Upper: 10,
				LowerType: pgtype.Inclusive, UpperType: pgtype.Inclusive,
				Valid: true,
			},
		},
		{
			name:  "unbounded_lower",
			input: driverapi.NativeRange{Upper: 10, Bounds: "(]"},
			want: pgtype.Range[any]{
				Upper:     10,
				LowerType: pgtype.Unbounded, UpperType: pgtype.Inclusive,
				Valid: true,
			},
		},
		{
			name:  "unbounded_upper",
			input: driverapi.NativeRange{Lower: 5, Bounds: "[)"},
			want: pgtype.Range[any]{
				Lower:     5,
				LowerType: pgtype.Inclusive, UpperType: pgtype.Unbounded,
				Valid: true,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, toPgtypeRange(tc.input))
		})
	}
}

func Test_fromPgtypeRange_InvertsToPgtypeRange(t *testing.T) {
	inputs := []driverapi.NativeRange{
		{},
		{Lower: 1, Upper: 10, Bounds: "[)"},
		{Lower: 1, Upper: 10, Bounds: "(]"},
		{Upper: 10, Bounds: "(]"},
		{Lower: 5, Bounds: "[)"},
	}

	for _, input := range inputs {
		assert.Equal(t, input, fromPgtypeRange(toPgtypeRange(input)))
	}
}

func Test_fromPgtypeRange_InvalidBecomesEmpty(t *testing.T) {
	assert.Equal(t, driverapi.NativeRange{}, fromPgtypeRange(pgtype.Range[any]{}))
}

func Test_encodeArg_MultirangeMapsEveryElement(t *testing.T) {
	input := driverapi.NativeMultirange{
		{Lower: 1, Upper: 5, Bounds: "[)"},
		{},
	}

	encoded := encodeArg(input)

	ranges, ok := encoded.(pgtype.Multirange[pgtype.Range[any]])
	require.True(t, ok)
	require.Len(t, ranges, 2)
	assert.Equal(t, pgtype.Inclusive, ranges[0].LowerType)
	assert.Equal(t, pgtype.Empty, ranges[1].LowerType)
}

func Test_decodeRow_MapsRangeValuesBack(t *testing.T) {
	values := []any{
		7,
		toPgtypeRange(driverapi.NativeRange{Lower: 1, Upper: 2, Bounds: "[)"}),
		pgtype.Multirange[pgtype.Range[any]]{
			toPgtypeRange(driverapi.NativeRange{Lower: 3, Upper: 4, Bounds: "[]"}),
		},
	}

	row := decodeRow(values)

	assert.Equal(t, 7, row[0])
	assert.Equal(t, driverapi.NativeRange{Lower: 1, Upper: 2, Bounds: "[)"}, row[1])
	assert.Equal(t, driverapi.NativeMultirange{{Lower: 3, Upper: 4, Bounds: "[]"}}, row[2])
}
