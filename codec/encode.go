// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Common errors returned by the encoder.
var (
	// ErrValueTooLong is returned when a string or byte buffer exceeds the
	// 255-byte limit of the one-byte length prefix. Data is never truncated.
	ErrValueTooLong = errors.New("codec: value exceeds one-byte length prefix")

	// ErrTooManyEntries is returned when a map holds more than 255 entries.
	ErrTooManyEntries = errors.New("codec: map exceeds one-byte entry count")

	// ErrInvalidValue is returned when encoding a zero Value.
	ErrInvalidValue = errors.New("codec: invalid value")
)

// Wire layout constants for the Float64 kind. The peer decoder reads the
// payload at a fixed offset inside a fixed-width region; both numbers must
// be reproduced bit-exactly or every following field is misread.
const (
	float64Width  = 15
	float64Offset = 7
)

const maxPrefixed = math.MaxUint8

// EncodeMethodCall encodes a method invocation into a flat byte buffer:
//
//	[TagString][len][method][TagMap][count][entries...]
//
// Argument order is preserved exactly as given. The transform is pure; the
// returned buffer is freshly allocated.
func EncodeMethodCall(method string, args []Entry) ([]byte, error) {
	buf := make([]byte, 0, 2+len(method)+2+16*len(args))

	buf, err := appendString(buf, method)
	if err != nil {
		return nil, fmt.Errorf("%w (method %q)", err, method)
	}

	buf, err = appendMap(buf, args)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// EncodeValue encodes a single tagged value. Exposed for callers that build
// nested payloads outside a method call.
func EncodeValue(v Value) ([]byte, error) {
	return appendValue(nil, v)
}

// appendValue appends the tag and payload of v. This is the single dispatch
// site over the closed kind set; every kind has exactly one arm here.
func appendValue(buf []byte, v Value) ([]byte, error) {
	switch v.kind {
	case KindInt32:
		buf = append(buf, byte(KindInt32))
		return binary.LittleEndian.AppendUint32(buf, uint32(v.i32)), nil

	case KindFloat64:
		buf = append(buf, byte(KindFloat64))
		var region [float64Width]byte
		binary.LittleEndian.PutUint64(region[float64Offset:], math.Float64bits(v.f64))
		return append(buf, region[:]...), nil

	case KindString:
		return appendString(buf, v.str)

	case KindBytes:
		if len(v.buf) > maxPrefixed {
			return nil, fmt.Errorf("%w: %d bytes", ErrValueTooLong, len(v.buf))
		}
		buf = append(buf, byte(KindBytes), byte(len(v.buf)))
		return append(buf, v.buf...), nil

	case KindMap:
		return appendMap(buf, v.entries)

	default:
		return nil, fmt.Errorf("%w: kind %d", ErrInvalidValue, v.kind)
	}
}

// appendString appends a tagged, length-prefixed UTF-8 string.
// Strings whose encoded form exceeds 255 bytes are rejected, not truncated.
func appendString(buf []byte, s string) ([]byte, error) {
	if len(s) > maxPrefixed {
		return nil, fmt.Errorf("%w: %d bytes", ErrValueTooLong, len(s))
	}
	buf = append(buf, byte(KindString), byte(len(s)))
	return append(buf, s...), nil
}

// appendMap appends a tagged map: entry count, then key/value pairs in the
// order given by the caller.
func appendMap(buf []byte, entries []Entry) ([]byte, error) {
	if len(entries) > maxPrefixed {
		return nil, fmt.Errorf("%w: %d entries", ErrTooManyEntries, len(entries))
	}
	buf = append(buf, byte(KindMap), byte(len(entries)))

	for _, e := range entries {
		var err error
		buf, err = appendString(buf, e.Key)
		if err != nil {
			return nil, fmt.Errorf("%w (key %q)", err, e.Key)
		}
		buf, err = appendValue(buf, e.Value)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Key, err)
		}
	}
	return buf, nil
}
