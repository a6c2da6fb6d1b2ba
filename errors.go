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
	"errors"
	"fmt"
)

// Configuration errors surfaced at construction time.
var (
	// ErrMissingRail is returned by NewPanel when no power rail capability
	// was supplied. The rail is the one hardware handle a panel cannot
	// operate without.
	ErrMissingRail = errors.New("power rail capability is required")

	// ErrUnknownPanel is returned by LookupDescriptor for a name that was
	// never registered.
	ErrUnknownPanel = errors.New("unknown panel descriptor")

	// ErrDuplicatePanel is returned by RegisterDescriptor when the name is
	// already taken.
	ErrDuplicatePanel = errors.New("panel descriptor already registered")
)

// SequenceErrorKind classifies why a command buffer failed to parse.
type SequenceErrorKind string

const (
	// SequenceErrLength means a record declared a payload length larger
	// than the bytes remaining in the buffer.
	SequenceErrLength SequenceErrorKind = "length"
	// SequenceErrTrailer means the buffer was not fully consumed by whole
	// records; bytes were left over after the last complete record.
	SequenceErrTrailer SequenceErrorKind = "trailer"
)

// SequenceError reports a malformed command buffer. A present-but-malformed
// buffer never yields a partial sequence; parsing fails as a whole.
type SequenceError struct {
	Kind      SequenceErrorKind
	Offset    int // byte offset of the offending record header
	Declared  int // declared payload length (length errors)
	Remaining int // bytes remaining at the point of failure
}

func (e *SequenceError) Error() string {
	switch e.Kind {
	case SequenceErrLength:
		return fmt.Sprintf("command buffer: record at offset %d declares %d payload bytes, %d remain",
			e.Offset, e.Declared, e.Remaining)
	case SequenceErrTrailer:
		return fmt.Sprintf("command buffer: %d trailing bytes after last complete record", e.Remaining)
	default:
		return fmt.Sprintf("command buffer: malformed record at offset %d", e.Offset)
	}
}

// UnknownCommandError reports a command type outside the recognized generic
// and DCS write classes. It aborts the remainder of the transmission.
type UnknownCommandError struct {
	Index int  // position of the command within its sequence
	Type  byte // the unrecognized type tag
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command type 0x%02X at sequence index %d", e.Type, e.Index)
}

// ChannelError wraps a failed write on the command channel. Channel write
// failures are reported but do not stop transmission of later commands.
type ChannelError struct {
	Err  error
	Op   string // "GenericWrite" or "DCSWrite"
	Port string // channel identifier, may be empty for mocks
}

func (e *ChannelError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("channel %s on %s failed: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("channel %s failed: %v", e.Op, e.Err)
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}

// RailError wraps a power rail failure. From Prepare it aborts the
// transition; from Unprepare and Shutdown it is reported only.
type RailError struct {
	Err error
	Op  string // "enable" or "disable"
}

func (e *RailError) Error() string {
	return fmt.Sprintf("power rail %s failed: %v", e.Op, e.Err)
}

func (e *RailError) Unwrap() error {
	return e.Err
}
