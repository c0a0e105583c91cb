// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

// Kind identifies the wire type of a Value. The numeric values are the tag
// bytes written on the wire; the peer dispatches on them directly, so they
// are protocol constants, not an implementation detail.
type Kind byte

// Wire tag constants.
const (
	// KindInt32 is a signed 32-bit integer, little-endian, 4 bytes.
	KindInt32 Kind = 3

	// KindFloat64 is a 64-bit float carried in a 15-byte region with the
	// little-endian payload at byte offset 7. The 7 leading pad bytes are
	// an alignment convention of the peer decoder.
	KindFloat64 Kind = 6

	// KindString is a UTF-8 string with a one-byte length prefix.
	KindString Kind = 7

	// KindBytes is a raw byte buffer with a one-byte length prefix.
	KindBytes Kind = 8

	// KindMap is an ordered key/value sequence with a one-byte entry count.
	KindMap Kind = 13
)

// kindNames maps Kind values to their string representation.
var kindNames = map[Kind]string{
	KindInt32:   "Int32",
	KindFloat64: "Float64",
	KindString:  "String",
	KindBytes:   "Bytes",
	KindMap:     "Map",
}

// String returns the string representation of a Kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Value is a closed tagged union over the five encodable kinds.
// Construct values with Int32Of, Float64Of, StringOf, BytesOf, or MapOf;
// the zero Value is invalid and rejected at encode time.
type Value struct {
	kind    Kind
	i32     int32
	f64     float64
	str     string
	buf     []byte
	entries []Entry
}

// Entry is one ordered key/value pair of a map value.
// Keys on the wire are always strings.
type Entry struct {
	Key   string
	Value Value
}

// Int32Of creates an Int32 value.
func Int32Of(v int32) Value {
	return Value{kind: KindInt32, i32: v}
}

// Float64Of creates a Float64 value.
func Float64Of(v float64) Value {
	return Value{kind: KindFloat64, f64: v}
}

// StringOf creates a String value.
func StringOf(s string) Value {
	return Value{kind: KindString, str: s}
}

// BytesOf creates a byte-buffer value. The slice is referenced, not copied;
// the caller must not mutate it before encoding.
func BytesOf(b []byte) Value {
	return Value{kind: KindBytes, buf: b}
}

// MapOf creates an ordered map value. Entry order is preserved on the wire;
// the peer may rely on it for index-based field access.
func MapOf(entries ...Entry) Value {
	return Value{kind: KindMap, entries: entries}
}

// Kind returns the value's wire kind.
func (v Value) Kind() Kind { return v.kind }

// Int32 returns the payload of an Int32 value.
func (v Value) Int32() int32 { return v.i32 }

// Float64 returns the payload of a Float64 value.
func (v Value) Float64() float64 { return v.f64 }

// Str returns the payload of a String value.
func (v Value) Str() string { return v.str }

// Bytes returns the payload of a byte-buffer value.
func (v Value) Bytes() []byte { return v.buf }

// Entries returns the ordered entries of a Map value.
func (v Value) Entries() []Entry { return v.entries }

// MethodCall pairs a method name with its ordered argument map. It is
// constructed immediately before encoding and not retained afterwards.
type MethodCall struct {
	Method string
	Args   []Entry
}
