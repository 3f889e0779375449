package pgxclient

import (
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
)

// encodeArgs maps the driverapi wire values in a bind parameter list onto
// the representations pgx understands. Everything else passes through.
func encodeArgs(args []any) []any {
	if len(args) == 0 {
		return args
	}

	encoded := make([]any, len(args))
	for i, arg := range args {
		encoded[i] = encodeArg(arg)
	}

	return encoded
}

func encodeArg(arg any) any {
	switch v := arg.(type) {
	case driverapi.JSONValue:
		// bind as text so parameter type inference works for json columns
		return string(v.Bytes)
	case driverapi.NativeRange:
		return toPgtypeRange(v)
	case driverapi.NativeMultirange:
		ranges := make(pgtype.Multirange[pgtype.Range[any]], len(v))
		for i, elem := range v {
			ranges[i] = toPgtypeRange(elem)
		}
		return ranges
	default:
		return arg
	}
}

// decodeRow maps pgx result values back onto driverapi wire values.
func decodeRow(values []any) driverapi.Row {
	row := make(driverapi.Row, len(values))
	for i, value := range values {
		row[i] = decodeValue(value)
	}

	return row
}

func decodeValue(value any) any {
	switch v := value.(type) {
	case pgtype.Range[any]:
		return fromPgtypeRange(v)
	case pgtype.Multirange[pgtype.Range[any]]:
		ranges := make(driverapi.NativeMultirange, len(v))
		for i, elem := range v {
			ranges[i] = fromPgtypeRange(elem)
		}
		return ranges
	default:
		return value
	}
}

func toPgtypeRange(r driverapi.NativeRange) pgtype.Range[any] {
	if r.Bounds == "" {
		return pgtype.Range[any]{LowerType: pgtype.Empty, UpperType: pgtype.Empty, Valid: true}
	}

	lowerType := pgtype.Exclusive
	if strings.HasPrefix(r.Bounds, "[") {
		lowerType = pgtype.Inclusive
	}
	if r.Lower == nil {
		lowerType = pgtype.Unbounded
	}

	upperType := pgtype.Exclusive
	if strings.HasSuffix(r.Bounds, "]") {
		upperType = pgtype.Inclusive
	}
	if r.Upper == nil {
		upperType = pgtype.Unbounded
	}

	return pgtype.Range[any]{
		Lower:     r.Lower,
		Upper:     r.Upper,
		LowerType: lowerType,
		UpperType: upperType,
		Valid:     true,
	}
}

func fromPgtypeRange(r pgtype.Range[any]) driverapi.NativeRange {
	if !r.Valid || r.LowerType == pgtype.Empty {
		return driverapi.NativeRange{}
	}

	lower := byte('(')
	if r.LowerType == pgtype.Inclusive {
		lower = '['
	}

	upper := byte(')')
	if r.UpperType == pgtype.Inclusive {
		upper = ']'
	}

	native := driverapi.NativeRange{Bounds: string([]byte{lower, upper})}

	if r.LowerType != pgtype.Unbounded {
		native.Lower = r.Lower
	}
	if r.UpperType != pgtype.Unbounded {
		native.Upper = r.Upper
	}

	return native
}
