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

// headerSize is the fixed record header: type tag, wait, payload length.
const headerSize = 3

// Command is one decoded record of a command sequence. Payload aliases the
// sequence's backing buffer; it must not be mutated and must not outlive
// the owning Sequence.
type Command struct {
	Payload []byte
	Type    byte // MIPI DSI data type tag
	Wait    byte // delay after this command, in milliseconds
}

// Sequence is an ordered, immutable list of commands decoded from a raw
// buffer. The backing buffer is copied once at parse time, so a Sequence is
// independent of the caller's buffer after ParseSequence returns.
type Sequence struct {
	buf  []byte
	cmds []Command
}

// ParseSequence decodes a raw command buffer into a Sequence.
//
// The buffer is scanned twice: a validation pass that checks every record's
// declared payload length against the bytes actually remaining, then a
// materialization pass over the now-trusted buffer. An empty buffer yields
// an empty sequence; any buffer not fully consumed by whole records fails
// with a *SequenceError and yields nothing.
func ParseSequence(data []byte) (*Sequence, error) {
	if len(data) == 0 {
		return &Sequence{}, nil
	}

	buf := append([]byte(nil), data...)

	// Validation pass. The length check must happen before any payload
	// indexing: a hostile dlen must never cause a read past the buffer.
	cnt := 0
	off := 0
	rem := len(buf)
	for rem > headerSize {
		dlen := int(buf[off+2])
		if dlen > rem-headerSize {
			return nil, &SequenceError{
				Kind:      SequenceErrLength,
				Offset:    off,
				Declared:  dlen,
				Remaining: rem - headerSize,
			}
		}
		off += headerSize + dlen
		rem -= headerSize + dlen
		cnt++
	}
	if rem != 0 {
		return nil, &SequenceError{
			Kind:      SequenceErrTrailer,
			Offset:    off,
			Remaining: rem,
		}
	}

	// Materialization pass. Payloads alias buf; no per-command copies.
	cmds := make([]Command, 0, cnt)
	off = 0
	for i := 0; i < cnt; i++ {
		dlen := int(buf[off+2])
		cmds = append(cmds, Command{
			Type:    buf[off],
			Wait:    buf[off+1],
			Payload: buf[off+headerSize : off+headerSize+dlen],
		})
		off += headerSize + dlen
	}

	return &Sequence{buf: buf, cmds: cmds}, nil
}

// Commands returns the decoded commands in order. The returned slice and
// the payloads it holds are owned by the Sequence; callers must treat them
// as read-only.
func (s *Sequence) Commands() []Command {
	return s.cmds
}

// Len returns the number of commands in the sequence.
func (s *Sequence) Len() int {
	return len(s.cmds)
}

// Size returns the length in bytes of the backing buffer. For a valid
// sequence this always equals the sum of header plus payload sizes over
// all commands.
func (s *Sequence) Size() int {
	return len(s.buf)
}
