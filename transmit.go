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
	"time"

	"github.com/ZaparooProject/go-dsipanel/internal/log"
)

// preciseSleepCutoff is the largest wait, in milliseconds, that still takes
// the microsecond-granularity sleep path.
const preciseSleepCutoff = 20

// SleepFunc suspends the calling goroutine for a millisecond delay. The
// panel and transmitter take one so tests can record waits instead of
// serving them.
type SleepFunc func(ms uint)

// panelSleep is the default SleepFunc. Waits above preciseSleepCutoff use a
// plain millisecond sleep; shorter inter-command gaps sleep on a
// microsecond base to stay within [ms*1000, (ms+1)*1000) microseconds.
func panelSleep(ms uint) {
	if ms == 0 {
		return
	}
	if ms > preciseSleepCutoff {
		time.Sleep(time.Duration(ms) * time.Millisecond)
		return
	}
	time.Sleep(time.Duration(ms*1000) * time.Microsecond)
}

// Transmitter replays a parsed Sequence over a Channel, honoring each
// command's inter-command wait.
type Transmitter struct {
	channel Channel
	sleep   SleepFunc
}

// NewTransmitter creates a transmitter for the given channel.
func NewTransmitter(channel Channel) *Transmitter {
	return &Transmitter{
		channel: channel,
		sleep:   panelSleep,
	}
}

// Send transmits every command of seq in order.
//
// An unrecognized command type aborts immediately with an
// *UnknownCommandError; no later command is sent. A failed channel write is
// reported and transmission continues; the last such failure is returned
// after the whole sequence has been attempted, so callers that treat
// transmission as best-effort can log it without losing the distinction
// from the fatal unknown-type case.
func (t *Transmitter) Send(seq *Sequence) error {
	var lastErr error

	for i, cmd := range seq.Commands() {
		var err error
		switch classifyCommand(cmd.Type) {
		case writeGeneric:
			err = t.channel.GenericWrite(cmd.Payload)
		case writeDCS:
			err = t.channel.DCSWrite(cmd.Payload)
		default:
			return &UnknownCommandError{Index: i, Type: cmd.Type}
		}

		if err != nil {
			lastErr = err
			log.Error("channel write failed", err, "index", i, "type", cmd.Type)
		}

		if cmd.Wait > 0 {
			t.sleep(uint(cmd.Wait))
		}
	}

	return lastErr
}
