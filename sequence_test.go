// go-dsipanel
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-dsipanel.
//
// go-dsipanel is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-dsipanel is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-dsipanel; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package dsipanel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// appendRecord serializes one command record onto buf in the wire format.
func appendRecord(buf []byte, typ, wait byte, payload []byte) []byte {
	buf = append(buf, typ, wait, byte(len(payload)))
	return append(buf, payload...)
}

func TestParseSequence_Empty(t *testing.T) {
	t.Parallel()

	seq, err := ParseSequence(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, seq.Len())

	seq, err = ParseSequence([]byte{})
	require.NoError(t, err)
	assert.Equal(t, 0, seq.Len())
}

func TestParseSequence_RoundTrip(t *testing.T) {
	t.Parallel()

	type record struct {
		payload []byte
		typ     byte
		wait    byte
	}

	records := []record{
		{typ: TypeDCSShortWrite, wait: 120, payload: []byte{0x11}},
		{typ: TypeGenericLongWrite, wait: 0, payload: []byte{0xB0, 0x01, 0x02, 0x03}},
		{typ: TypeDCSShortWriteParam, wait: 5, payload: []byte{0x36, 0x08}},
		{typ: TypeDCSShortWrite, wait: 20, payload: []byte{0x29}},
	}

	var buf []byte
	for _, r := range records {
		buf = appendRecord(buf, r.typ, r.wait, r.payload)
	}

	seq, err := ParseSequence(buf)
	require.NoError(t, err)
	require.Equal(t, len(records), seq.Len())

	total := 0
	for i, cmd := range seq.Commands() {
		assert.Equal(t, records[i].typ, cmd.Type, "record %d type", i)
		assert.Equal(t, records[i].wait, cmd.Wait, "record %d wait", i)
		assert.Equal(t, records[i].payload, cmd.Payload, "record %d payload", i)
		total += headerSize + len(cmd.Payload)
	}

	// The whole buffer is accounted for by whole records.
	assert.Equal(t, seq.Size(), total)
	assert.Equal(t, len(buf), total)
}

func TestParseSequence_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		buf      []byte
		wantKind SequenceErrorKind
	}{
		{
			name:     "payload length past end of buffer",
			buf:      []byte{TypeDCSLongWrite, 0x00, 0x10, 0xAA, 0xBB},
			wantKind: SequenceErrLength,
		},
		{
			name:     "payload length one past end",
			buf:      []byte{TypeDCSShortWrite, 0x00, 0x02, 0x11},
			wantKind: SequenceErrLength,
		},
		{
			name:     "valid record plus stray byte",
			buf:      append(appendRecord(nil, TypeDCSShortWrite, 0, []byte{0x11}), 0xEE),
			wantKind: SequenceErrTrailer,
		},
		{
			name:     "single byte",
			buf:      []byte{0x05},
			wantKind: SequenceErrTrailer,
		},
		{
			name:     "two bytes",
			buf:      []byte{0x05, 0x00},
			wantKind: SequenceErrTrailer,
		},
		{
			name:     "bare header only",
			buf:      []byte{0x05, 0x00, 0x00},
			wantKind: SequenceErrTrailer,
		},
		{
			name: "second record truncated",
			buf: append(appendRecord(nil, TypeGenericShortWrite1, 0, []byte{0xB0}),
				TypeDCSLongWrite, 0x00, 0x05, 0x01, 0x02),
			wantKind: SequenceErrLength,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			seq, err := ParseSequence(tt.buf)
			require.Error(t, err)
			assert.Nil(t, seq)

			var seqErr *SequenceError
			require.ErrorAs(t, err, &seqErr)
			assert.Equal(t, tt.wantKind, seqErr.Kind)
		})
	}
}

func TestParseSequence_OwnsBuffer(t *testing.T) {
	t.Parallel()

	buf := appendRecord(nil, TypeDCSShortWriteParam, 0, []byte{0x36, 0x08})
	seq, err := ParseSequence(buf)
	require.NoError(t, err)

	// Clobbering the caller's buffer must not reach the parsed payloads.
	for i := range buf {
		buf[i] = 0xFF
	}

	require.Equal(t, 1, seq.Len())
	assert.Equal(t, []byte{0x36, 0x08}, seq.Commands()[0].Payload)
}

func TestParseSequence_SumInvariant(t *testing.T) {
	t.Parallel()

	// For every valid buffer, the sum of header+payload sizes over all
	// parsed commands equals the buffer length exactly.
	payloadSets := [][][]byte{
		{{0x11}},
		{{0x11}, {0xB0, 0x00}},
		{make([]byte, 255)},
		{{0x01}, {0x02, 0x03}, make([]byte, 64), {0x29}},
	}

	for _, payloads := range payloadSets {
		var buf []byte
		for _, p := range payloads {
			buf = appendRecord(buf, TypeGenericLongWrite, 0, p)
		}

		seq, err := ParseSequence(buf)
		require.NoError(t, err)
		require.Equal(t, len(payloads), seq.Len())

		total := 0
		for _, cmd := range seq.Commands() {
			total += headerSize + len(cmd.Payload)
		}
		assert.Equal(t, len(buf), total)
	}
}
