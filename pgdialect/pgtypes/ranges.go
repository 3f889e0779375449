package pgtypes

import (
	"errors"
	"fmt"

	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
)

// ErrInvalidRangeValue is returned when a range codec receives a value of an
// unexpected type.
var ErrInvalidRangeValue = errors.New("value is not a range")

// Range is the abstract range value: lower and upper bound, an inclusivity
// spelling and an empty flag. The canonical inclusivity for an empty range
// is "[)".
type Range struct {
	Lower  any
	Upper  any
	Bounds string
	Empty  bool
}

// EmptyRange returns the canonical empty range.
func EmptyRange() Range {
	return Range{Bounds: "[)", Empty: true}
}

// Multirange is an ordered sequence of ranges.
type Multirange []Range

func encodeRange(value any) (any, error) {
	switch v := value.(type) {
	case Range:
		return rangeToNative(v), nil
	case *Range:
		if v == nil {
			return nil, nil
		}
		return rangeToNative(*v), nil
	case nil, string, driverapi.NativeRange:
		// literals and already-native values pass through
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidRangeValue, value)
	}
}

func decodeRange(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case driverapi.NativeRange:
		return nativeToRange(v), nil
	case *driverapi.NativeRange:
		if v == nil {
			return nil, nil
		}
		return nativeToRange(*v), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidRangeValue, value)
	}
}

func encodeMultirange(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, driverapi.NativeMultirange:
		return v, nil
	case Multirange:
		return multirangeToNative(v), nil
	case []Range:
		return multirangeToNative(v), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidRangeValue, value)
	}
}

func decodeMultirange(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case driverapi.NativeMultirange:
		ranges := make(Multirange, len(v))
		for i, elem := range v {
			ranges[i] = nativeToRange(elem)
		}
		return ranges, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidRangeValue, value)
	}
}

func rangeToNative(r Range) driverapi.NativeRange {
	if r.Empty {
		// the native representation of an empty range carries no bounds
		return driverapi.NativeRange{}
	}

	return driverapi.NativeRange{Lower: r.Lower, Upper: r.Upper, Bounds: r.Bounds}
}

func nativeToRange(n driverapi.NativeRange) Range {
	if n.Bounds == "" {
		return EmptyRange()
	}

	return Range{Lower: n.Lower, Upper: n.Upper, Bounds: n.Bounds}
}

func multirangeToNative(ranges []Range) driverapi.NativeMultirange {
	native := make(driverapi.NativeMultirange, len(ranges))
	for i, r := range ranges {
		native[i] = rangeToNative(r)
	}

	return native
}
