package pgtypes

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/francipvb/pgdialect-go/pgdialect/driverapi"
)

func defaultJSONEncode(value any) ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(value)
}

func defaultJSONDecode(data []byte) (any, error) {
	var value any
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &value); err != nil {
		return nil, err
	}

	return value, nil
}

// SetJSONEncoder replaces the serializer the JSON/JSONB codecs use for
// binding values.
func (m *Map) SetJSONEncoder(fn func(value any) ([]byte, error)) {
	m.jsonEncode = fn
}

// SetJSONDecoder replaces the deserializer the JSON/JSONB codecs use for
// result values.
func (m *Map) SetJSONDecoder(fn func(data []byte) (any, error)) {
	m.jsonDecode = fn
}

// jsonCodec binds through the map so a serializer swapped in later is picked
// up by codecs registered at construction.
func (m *Map) jsonCodec() Codec {
	encode := func(value any) (any, error) {
		switch v := value.(type) {
		case nil:
			return nil, nil
		case driverapi.JSONValue:
			return v, nil
		case []byte:
			return driverapi.JSONValue{Bytes: v}, nil
		default:
			data, err := m.jsonEncode(value)
			if err != nil {
				return nil, err
			}
			return driverapi.JSONValue{Bytes: data}, nil
		}
	}

	decode := func(value any) (any, error) {
		switch v := value.(type) {
		case nil:
			return nil, nil
		case driverapi.JSONValue:
			return m.jsonDecode(v.Bytes)
		case []byte:
			return m.jsonDecode(v)
		case string:
			return m.jsonDecode([]byte(v))
		default:
			return v, nil
		}
	}

	return Codec{Encode: encode, Decode: decode}
}
