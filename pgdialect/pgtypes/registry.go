package pgtypes

// EncodeFunc turns an abstract value into the client library's native
// literal or object for binding.
type EncodeFunc func(value any) (any, error)

// DecodeFunc turns a native value coming back from the client library into
// its abstract form.
type DecodeFunc func(value any) (any, error)

// Codec is one (encode, decode) pair for an abstract kind. Either side may
// be nil, meaning identity.
type Codec struct {
	Encode EncodeFunc
	Decode DecodeFunc
}

func identity(value any) (any, error) {
	return value, nil
}

// Identity returns the pass-through codec used for unregistered kinds.
func Identity() Codec {
	return Codec{Encode: identity, Decode: identity}
}

// Map is the coercion registry. It is mutated only during setup, which
// includes per-connection initialization registering named-type loaders;
// once the owning dialect is in use it is consulted read-only.
type Map struct {
	codecs     map[Kind]Codec
	loaders    map[string]DecodeFunc
	jsonEncode func(value any) ([]byte, error)
	jsonDecode func(data []byte) (any, error)
}

// NewMap creates a coercion map with the structural codecs (range,
// multirange, JSON, JSONB) pre-registered and jsoniter as the JSON
// serializer.
func NewMap() *Map {
	m := &Map{
		codecs:     make(map[Kind]Codec),
		loaders:    make(map[string]DecodeFunc),
		jsonEncode: defaultJSONEncode,
		jsonDecode: defaultJSONDecode,
	}

	m.Register(KindRange, Codec{Encode: encodeRange, Decode: decodeRange})
	m.Register(KindMultirange, Codec{Encode: encodeMultirange, Decode: decodeMultirange})
	m.Register(KindJSON, m.jsonCodec())
	m.Register(KindJSONB, m.jsonCodec())

	return m
}

// Register installs a codec for a kind. The last registration for a given
// kind wins.
func (m *Map) Register(kind Kind, codec Codec) {
	if codec.Encode == nil {
		codec.Encode = identity
	}
	if codec.Decode == nil {
		codec.Decode = identity
	}

	m.codecs[kind] = codec
}

// Lookup returns the codec for a kind. Lookups never fail; kinds without a
// registration get the identity codec.
func (m *Map) Lookup(kind Kind) Codec {
	if codec, ok := m.codecs[kind]; ok {
		return codec
	}

	return Identity()
}

// RegisterLoader installs a result decoder for a named database type
// (hstore, inet, cidr and friends). Last registration wins.
func (m *Map) RegisterLoader(typeName string, fn DecodeFunc) {
	m.loaders[typeName] = fn
}

// Loader returns the decoder registered for a named type, if any.
func (m *Map) Loader(typeName string) (DecodeFunc, bool) {
	fn, ok := m.loaders[typeName]
	return fn, ok
}

// TextLoader decodes any native value as plain text. It is the loader
// registered for inet/cidr when native handling is disabled.
func TextLoader(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return string(v), nil
	default:
		return v, nil
	}
}
