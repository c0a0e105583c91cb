// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Common errors returned by the decoder.
var (
	// ErrMalformedResponse is returned when a response buffer is shorter
	// than the fixed-offset field being read.
	ErrMalformedResponse = errors.New("codec: malformed response")

	// ErrUnknownTag is returned when a buffer contains a tag byte outside
	// the supported kind set.
	ErrUnknownTag = errors.New("codec: unknown tag")

	// ErrTruncated is returned when a buffer ends mid-value.
	ErrTruncated = errors.New("codec: truncated buffer")
)

// handleOffset is the fixed byte offset of the texture handle in a
// creation-call response.
const handleOffset = 2

// DecodeTextureHandle reads the 64-bit texture handle from a creation-call
// response. Only this single field of the response format is consumed.
func DecodeTextureHandle(resp []byte) (int64, error) {
	if len(resp) < handleOffset+8 {
		return 0, fmt.Errorf("%w: %d bytes, need %d", ErrMalformedResponse, len(resp), handleOffset+8)
	}
	return int64(binary.LittleEndian.Uint64(resp[handleOffset:])), nil
}

// DecodeMethodCall parses an encoded method-call envelope back into its
// method name and argument entries. It is the reference decoder for the
// format produced by EncodeMethodCall and covers exactly the five supported
// kinds; channel.Loopback uses it to hand structured calls to test handlers.
func DecodeMethodCall(buf []byte) (MethodCall, error) {
	r := reader{buf: buf}

	method, err := r.readTaggedString()
	if err != nil {
		return MethodCall{}, err
	}

	args, err := r.readTaggedMap()
	if err != nil {
		return MethodCall{}, err
	}

	if r.pos != len(r.buf) {
		return MethodCall{}, fmt.Errorf("codec: %d trailing bytes after envelope", len(r.buf)-r.pos)
	}
	return MethodCall{Method: method, Args: args}, nil
}

// reader walks a tagged buffer left to right.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) readByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, fmt.Errorf("%w: at offset %d", ErrTruncated, r.pos)
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readBytes(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d", ErrTruncated, n, r.pos)
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// readValue reads one tagged value of any supported kind.
func (r *reader) readValue() (Value, error) {
	tag, err := r.readByte()
	if err != nil {
		return Value{}, err
	}

	switch Kind(tag) {
	case KindInt32:
		b, err := r.readBytes(4)
		if err != nil {
			return Value{}, err
		}
		return Int32Of(int32(binary.LittleEndian.Uint32(b))), nil

	case KindFloat64:
		region, err := r.readBytes(float64Width)
		if err != nil {
			return Value{}, err
		}
		bits := binary.LittleEndian.Uint64(region[float64Offset:])
		return Float64Of(math.Float64frombits(bits)), nil

	case KindString:
		s, err := r.readPrefixed()
		if err != nil {
			return Value{}, err
		}
		return StringOf(string(s)), nil

	case KindBytes:
		b, err := r.readPrefixed()
		if err != nil {
			return Value{}, err
		}
		out := make([]byte, len(b))
		copy(out, b)
		return BytesOf(out), nil

	case KindMap:
		entries, err := r.readMapBody()
		if err != nil {
			return Value{}, err
		}
		return MapOf(entries...), nil

	default:
		return Value{}, fmt.Errorf("%w: %d at offset %d", ErrUnknownTag, tag, r.pos-1)
	}
}

// readPrefixed reads a one-byte length prefix followed by that many bytes.
func (r *reader) readPrefixed() ([]byte, error) {
	n, err := r.readByte()
	if err != nil {
		return nil, err
	}
	return r.readBytes(int(n))
}

// readTaggedString reads a value and requires it to be a string.
func (r *reader) readTaggedString() (string, error) {
	v, err := r.readValue()
	if err != nil {
		return "", err
	}
	if v.Kind() != KindString {
		return "", fmt.Errorf("codec: expected string, got %s", v.Kind())
	}
	return v.Str(), nil
}

// readTaggedMap reads a value and requires it to be a map.
func (r *reader) readTaggedMap() ([]Entry, error) {
	v, err := r.readValue()
	if err != nil {
		return nil, err
	}
	if v.Kind() != KindMap {
		return nil, fmt.Errorf("codec: expected map, got %s", v.Kind())
	}
	return v.Entries(), nil
}

// readMapBody reads the entry count and that many key/value pairs.
func (r *reader) readMapBody() ([]Entry, error) {
	count, err := r.readByte()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, count)
	for i := 0; i < int(count); i++ {
		key, err := r.readTaggedString()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		val, err := r.readValue()
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		entries = append(entries, Entry{Key: key, Value: val})
	}
	return entries, nil
}
