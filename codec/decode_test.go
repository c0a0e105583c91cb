// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestDecodeTextureHandle(t *testing.T) {
	resp := make([]byte, 10)
	binary.LittleEndian.PutUint64(resp[2:], uint64(0xCAFE))

	handle, err := DecodeTextureHandle(resp)
	if err != nil {
		t.Fatalf("DecodeTextureHandle() error: %v", err)
	}
	if handle != 0xCAFE {
		t.Errorf("handle = %d, want %d", handle, 0xCAFE)
	}
}

func TestDecodeTextureHandleNegative(t *testing.T) {
	resp := make([]byte, 12)
	binary.LittleEndian.PutUint64(resp[2:], math.MaxUint64) // -1 as int64

	handle, err := DecodeTextureHandle(resp)
	if err != nil {
		t.Fatalf("DecodeTextureHandle() error: %v", err)
	}
	if handle != -1 {
		t.Errorf("handle = %d, want -1", handle)
	}
}

func TestDecodeTextureHandleShortBuffer(t *testing.T) {
	for _, n := range []int{0, 1, 2, 9} {
		_, err := DecodeTextureHandle(make([]byte, n))
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("len %d: error = %v, want ErrMalformedResponse", n, err)
		}
	}
}

func TestMethodCallRoundTrip(t *testing.T) {
	args := []Entry{
		{Key: "name", Value: StringOf("widget")},
		{Key: "id", Value: Int32Of(-42)},
		{Key: "scale", Value: Float64Of(2.5)},
		{Key: "payload", Value: BytesOf([]byte{0x00, 0xFF, 0x7F})},
	}

	buf, err := EncodeMethodCall("configure", args)
	if err != nil {
		t.Fatalf("EncodeMethodCall() error: %v", err)
	}

	call, err := DecodeMethodCall(buf)
	if err != nil {
		t.Fatalf("DecodeMethodCall() error: %v", err)
	}
	if call.Method != "configure" {
		t.Errorf("method = %q, want %q", call.Method, "configure")
	}
	if len(call.Args) != len(args) {
		t.Fatalf("args = %d entries, want %d", len(call.Args), len(args))
	}

	for i, want := range args {
		got := call.Args[i]
		if got.Key != want.Key {
			t.Errorf("entry %d key = %q, want %q", i, got.Key, want.Key)
		}
		if got.Value.Kind() != want.Value.Kind() {
			t.Errorf("entry %q kind = %s, want %s", got.Key, got.Value.Kind(), want.Value.Kind())
		}
	}

	if v := call.Args[0].Value.Str(); v != "widget" {
		t.Errorf("name = %q, want %q", v, "widget")
	}
	if v := call.Args[1].Value.Int32(); v != -42 {
		t.Errorf("id = %d, want -42", v)
	}
	// Float64 must survive bit-exactly through the padded region.
	if bits := math.Float64bits(call.Args[2].Value.Float64()); bits != math.Float64bits(2.5) {
		t.Errorf("scale bits = %x, want %x", bits, math.Float64bits(2.5))
	}
	if v := call.Args[3].Value.Bytes(); !bytes.Equal(v, []byte{0x00, 0xFF, 0x7F}) {
		t.Errorf("payload = %v, want [0 255 127]", v)
	}
}

func TestNestedMapRoundTrip(t *testing.T) {
	inner := MapOf(
		Entry{Key: "x", Value: Float64Of(1.0)},
		Entry{Key: "y", Value: Float64Of(math.Copysign(0, -1))},
	)
	buf, err := EncodeMethodCall("move", []Entry{{Key: "to", Value: inner}})
	if err != nil {
		t.Fatalf("EncodeMethodCall() error: %v", err)
	}

	call, err := DecodeMethodCall(buf)
	if err != nil {
		t.Fatalf("DecodeMethodCall() error: %v", err)
	}

	got := call.Args[0].Value
	if got.Kind() != KindMap {
		t.Fatalf("kind = %s, want Map", got.Kind())
	}
	entries := got.Entries()
	if len(entries) != 2 {
		t.Fatalf("inner entries = %d, want 2", len(entries))
	}
	// Negative zero survives only if the payload is bit-exact.
	if bits := math.Float64bits(entries[1].Value.Float64()); bits != math.Float64bits(math.Copysign(0, -1)) {
		t.Errorf("y bits = %x, want negative zero", bits)
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	// Valid method string, then a value with an unsupported tag.
	buf := []byte{7, 1, 'm', 13, 1, 7, 1, 'k', 99}
	_, err := DecodeMethodCall(buf)
	if !errors.Is(err, ErrUnknownTag) {
		t.Errorf("error = %v, want ErrUnknownTag", err)
	}
}

func TestDecodeTruncatedBuffer(t *testing.T) {
	buf, err := EncodeMethodCall("create", []Entry{
		{Key: "id", Value: Int32Of(7)},
	})
	if err != nil {
		t.Fatalf("EncodeMethodCall() error: %v", err)
	}

	// Every proper prefix of a valid envelope must fail cleanly.
	for n := 0; n < len(buf); n++ {
		if _, err := DecodeMethodCall(buf[:n]); err == nil {
			t.Errorf("DecodeMethodCall(%d-byte prefix) succeeded, want error", n)
		}
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	buf, err := EncodeMethodCall("create", nil)
	if err != nil {
		t.Fatalf("EncodeMethodCall() error: %v", err)
	}
	if _, err := DecodeMethodCall(append(buf, 0)); err == nil {
		t.Error("DecodeMethodCall with trailing byte succeeded, want error")
	}
}
