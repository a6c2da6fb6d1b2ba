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

/*
Package dsipanel drives the power-up and power-down protocol of a display
panel attached over a DSI-style serial command channel.

The library has two jobs: decoding board-supplied binary command sequences
(the panel-init-sequence/panel-exit-sequence record format used by many
board files) and running the panel lifecycle state machine that choreographs
the power rail, the reset and enable lines, the panel-specific delays, and
the replay of those command sequences.

Hardware access is injected through three small capability interfaces:

  - Rail: the regulated supply powering the panel
  - Line: a discrete GPIO control line (reset, enable)
  - Channel: the command channel carrying generic and DCS writes

Backends for real hardware live in subpackages (channel/serial for
go.bug.st/serial ports, line/gpio for periph.io pins); any test can instead
hand the panel the mock implementations from this package.

Basic Usage:

	import (
	    dsipanel "github.com/ZaparooProject/go-dsipanel"
	    "github.com/ZaparooProject/go-dsipanel/channel/serial"
	    "github.com/ZaparooProject/go-dsipanel/line/gpio"
	)

	rail, err := gpio.NewRail("GPIO12", false)
	if err != nil {
	    log.Fatal(err)
	}
	reset, err := gpio.NewLine("GPIO17")
	if err != nil {
	    log.Fatal(err)
	}
	ch, err := serial.New("/dev/ttyUSB0")
	if err != nil {
	    log.Fatal(err)
	}
	defer ch.Close()

	panel, err := dsipanel.NewPanel(desc, rail,
	    dsipanel.WithResetLine(reset),
	    dsipanel.WithChannel(ch),
	    dsipanel.WithOnSequence(onBytes),
	    dsipanel.WithOffSequence(offBytes),
	)
	if err != nil {
	    log.Fatal(err)
	}

	if err := panel.Prepare(); err != nil {
	    log.Fatal(err)
	}
	if err := panel.Enable(); err != nil {
	    log.Fatal(err)
	}

Command Sequence Format:

Sequences are parsed once, at construction, from the length-prefixed binary
record format:

	byte 0: command type tag (a MIPI DSI data type)
	byte 1: inter-command wait in milliseconds (0 = none)
	byte 2: payload length N
	bytes 3..3+N: payload

A buffer must be fully consumed by whole records; leftover bytes or a
payload length running past the end of the buffer are fatal parse errors.

Error Handling:

Construction errors (a missing rail, a malformed sequence) are fatal.
During transmission an unrecognized command type aborts the rest of the
sequence, while an individual channel write failure is reported and the
remaining commands are still sent. Lifecycle transitions that are already
satisfied are successful no-ops.

Thread Safety:

Panel operations are not thread-safe. Every transition runs to completion,
including its delays, on the calling goroutine; the caller is responsible
for serializing access to a panel instance.
*/
package dsipanel
