// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package codec implements the binary method-call envelope exchanged with
// the platform side of an embedded view.
//
// The wire format is self-describing: every value is preceded by a one-byte
// type tag, and variable-length values carry a one-byte length prefix. The
// envelope for a method call is:
//
//	[TagString][len][method bytes][TagMap][entry count][entries...]
//
// where each map entry is a key/value pair of tagged values. The tag bytes
// are protocol constants matched by the peer decoder; they must never change.
//
// Five value kinds are supported: 32-bit integers, 64-bit floats, UTF-8
// strings, raw byte buffers, and ordered maps. Strings and byte buffers are
// limited to 255 bytes by the one-byte length prefix; longer values are
// rejected at encode time rather than truncated.
package codec
