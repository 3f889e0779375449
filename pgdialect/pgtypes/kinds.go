// Package pgtypes is the type coercion table consulted during bind and
// result processing: a registry from abstract value kinds to encode/decode
// function pairs. Registration is last-wins per kind and lookups never fail;
// unrecognized kinds pass through unchanged.
package pgtypes

// Kind identifies an abstract value kind, independent from any client
// library's native representation.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindSmallInteger
	KindBigInteger
	KindBoolean
	KindDate
	KindTime
	KindTimestamp
	KindInterval
	KindJSON
	KindJSONB
	KindRange
	KindMultirange
	KindRegconfig
	KindCitext
	KindNull
)

// String returns a stable name for logging.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindSmallInteger:
		return "small_integer"
	case KindBigInteger:
		return "big_integer"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindTimestamp:
		return "timestamp"
	case KindInterval:
		return "interval"
	case KindJSON:
		return "json"
	case KindJSONB:
		return "jsonb"
	case KindRange:
		return "range"
	case KindMultirange:
		return "multirange"
	case KindRegconfig:
		return "regconfig"
	case KindCitext:
		return "citext"
	default:
		return "null"
	}
}
