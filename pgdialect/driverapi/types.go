package driverapi

// Row is one result row in column order.
type Row = []any

// Notice is an ephemeral diagnostic message pushed by the server during a
// session. Notices are not persisted; the dialect layer only logs them.
type Notice struct {
	Severity string
	Message  string
}

// NoticeHandler receives server notices as they arrive.
type NoticeHandler func(Notice)

// NativeRange is the client library's wire representation of a range value.
// An empty range is represented by an unset Bounds string.
type NativeRange struct {
	Lower  any
	Upper  any
	Bounds string
}

// NativeMultirange is an ordered sequence of native ranges.
type NativeMultirange []NativeRange

// JSONValue carries a serialized JSON document to or from the client library.
type JSONValue struct {
	Bytes []byte
}

// TypeInfo is metadata for a named database type, fetched per connection.
type TypeInfo struct {
	Name     string
	OID      uint32
	ArrayOID uint32
}
