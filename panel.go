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
	"github.com/ZaparooProject/go-dsipanel/internal/log"
)

// State is the observable lifecycle state of a panel.
type State int

const (
	// StateUnprepared means the panel is powered down.
	StateUnprepared State = iota
	// StatePrepared means the panel is powered and out of reset but not
	// showing content.
	StatePrepared
	// StateEnabled means the panel is prepared and showing content.
	StateEnabled
)

func (s State) String() string {
	switch s {
	case StateUnprepared:
		return "unprepared"
	case StatePrepared:
		return "prepared"
	case StateEnabled:
		return "enabled"
	default:
		return "invalid"
	}
}

// Panel is the lifecycle state machine for one display panel. It
// exclusively owns its rail, line, and channel handles for the lifetime of
// the instance.
//
// Thread Safety: Panel is NOT thread-safe. Every transition runs to
// completion, including its delays, on the calling goroutine, and the
// owning display-management framework is expected to serialize calls.
type Panel struct {
	desc       Descriptor
	rail       *railController
	resetLine  Line
	enableLine Line
	channel    Channel
	tx         *Transmitter
	onCmds     *Sequence
	offCmds    *Sequence
	sleep      SleepFunc
	prepared   bool
	enabled    bool
}

// NewPanel creates a panel from its descriptor, its power rail, and any
// optional capabilities. A nil rail fails with ErrMissingRail; a malformed
// on or off sequence fails construction with the parse error.
func NewPanel(desc Descriptor, rail Rail, opts ...Option) (*Panel, error) {
	if rail == nil {
		return nil, ErrMissingRail
	}

	p := &Panel{
		desc:  desc,
		rail:  newRailController(rail, desc.PowerInvert),
		sleep: panelSleep,
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	if p.channel != nil {
		p.tx = NewTransmitter(p.channel)
		p.tx.sleep = p.sleep
	}

	return p, nil
}

// State returns the current lifecycle state.
func (p *Panel) State() State {
	switch {
	case p.enabled:
		return StateEnabled
	case p.prepared:
		return StatePrepared
	default:
		return StateUnprepared
	}
}

// Prepare powers the panel up and takes it out of reset: rail on, enable
// line active, prepare delay, reset de-asserted, reset delay, reset
// asserted, init delay. Already-prepared panels return nil immediately.
//
// Only the rail step can fail the transition; a rail failure leaves the
// state unchanged. Line drives have no error path into the state machine
// and are reported only.
func (p *Panel) Prepare() error {
	if p.prepared {
		return nil
	}

	if err := p.rail.enable(); err != nil {
		return err
	}

	if p.enableLine != nil {
		p.driveLine("enable", p.enableLine, 1)
	}

	p.sleep(p.desc.Delay.Prepare)

	if p.resetLine != nil {
		p.driveLine("reset", p.resetLine, p.desc.inactiveResetLevel())
	}

	p.sleep(p.desc.Delay.Reset)

	if p.resetLine != nil {
		p.driveLine("reset", p.resetLine, p.desc.ResetLevel)
	}

	p.sleep(p.desc.Delay.Init)

	p.prepared = true
	return nil
}

// Enable waits the enable delay and replays the on-sequence, if one was
// configured and a channel exists. A transmission failure is reported but
// never blocks the transition. Already-enabled panels return nil
// immediately.
func (p *Panel) Enable() error {
	if p.enabled {
		return nil
	}

	p.sleep(p.desc.Delay.Enable)

	if p.onCmds != nil && p.tx != nil {
		if err := p.tx.Send(p.onCmds); err != nil {
			log.Error("failed to send on-sequence", err)
		}
	}

	p.enabled = true
	return nil
}

// Disable waits the disable delay and marks the panel as no longer showing
// content. No hardware line is touched; the panel stays prepared.
func (p *Panel) Disable() error {
	if !p.enabled {
		return nil
	}

	p.sleep(p.desc.Delay.Disable)

	p.enabled = false
	return nil
}

// Unprepare powers the panel down: off-sequence (best-effort), reset line
// to its inactive level, enable line off, rail off, unprepare delay. Valid
// from Enabled as well, in which case the panel is treated as functionally
// disabled first. Already-unprepared panels return nil immediately.
//
// The off-sequence and the rail disable are reported on failure but never
// block the remaining steps.
func (p *Panel) Unprepare() error {
	if !p.prepared {
		return nil
	}
	p.enabled = false

	if p.offCmds != nil && p.tx != nil {
		if err := p.tx.Send(p.offCmds); err != nil {
			log.Error("failed to send off-sequence", err)
		}
	}

	if p.resetLine != nil {
		p.driveLine("reset", p.resetLine, p.desc.inactiveResetLevel())
	}

	if p.enableLine != nil {
		p.driveLine("enable", p.enableLine, 0)
	}

	if err := p.rail.disable(); err != nil {
		log.Error("failed to disable power rail", err)
	}

	p.sleep(p.desc.Delay.Unprepare)

	p.prepared = false
	return nil
}

// Shutdown is the best-effort power-down path for abrupt system shutdown:
// Disable, then the hardware-line and rail steps of Unprepare, skipping
// the off-sequence and the unprepare delay. Panels that are not prepared
// are left alone.
func (p *Panel) Shutdown() {
	_ = p.Disable()

	if !p.prepared {
		return
	}

	if p.resetLine != nil {
		p.driveLine("reset", p.resetLine, p.desc.inactiveResetLevel())
	}

	if p.enableLine != nil {
		p.driveLine("enable", p.enableLine, 0)
	}

	if err := p.rail.disable(); err != nil {
		log.Error("failed to disable power rail", err)
	}
}

func (p *Panel) driveLine(name string, line Line, level int) {
	if err := line.SetLevel(level); err != nil {
		log.Error("failed to drive "+name+" line", err, "level", level)
	}
}
