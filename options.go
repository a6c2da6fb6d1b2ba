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
	"fmt"

	"github.com/ZaparooProject/go-dsipanel/internal/log"
)

// Option is a functional option for configuring a Panel.
type Option func(*Panel) error

// WithResetLine supplies the panel's reset GPIO line.
func WithResetLine(line Line) Option {
	return func(p *Panel) error {
		p.resetLine = line
		return nil
	}
}

// WithEnableLine supplies the panel's power-enable GPIO line.
func WithEnableLine(line Line) Option {
	return func(p *Panel) error {
		p.enableLine = line
		return nil
	}
}

// WithChannel supplies the command channel used to replay the on and off
// sequences. Without a channel, sequences are parsed but never sent.
func WithChannel(channel Channel) Option {
	return func(p *Panel) error {
		p.channel = channel
		return nil
	}
}

// WithOnSequence parses data as the sequence sent during Enable. A
// malformed buffer fails panel construction.
func WithOnSequence(data []byte) Option {
	return func(p *Panel) error {
		seq, err := ParseSequence(data)
		if err != nil {
			return fmt.Errorf("on-sequence: %w", err)
		}
		p.onCmds = seq
		return nil
	}
}

// WithOffSequence parses data as the sequence sent during Unprepare. A
// malformed buffer fails panel construction.
func WithOffSequence(data []byte) Option {
	return func(p *Panel) error {
		seq, err := ParseSequence(data)
		if err != nil {
			return fmt.Errorf("off-sequence: %w", err)
		}
		p.offCmds = seq
		return nil
	}
}

// WithSleepFunc replaces the default two-tier sleep, primarily for tests
// and simulation.
func WithSleepFunc(sleep SleepFunc) Option {
	return func(p *Panel) error {
		p.sleep = sleep
		return nil
	}
}

// SetDebugLogging toggles debug-level output from the library.
func SetDebugLogging(enabled bool) {
	if enabled {
		log.SetLevel(log.LevelDebug)
	} else {
		log.SetLevel(log.LevelInfo)
	}
}
