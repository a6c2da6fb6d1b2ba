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

// Package gpio provides periph.io-backed Line and Rail implementations for
// panels whose control signals hang off host GPIO pins.
package gpio

import (
	"fmt"
	"sync"

	dsipanel "github.com/ZaparooProject/go-dsipanel"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

var hostInitOnce sync.Once

// initHost initializes the periph.io host drivers exactly once per process.
func initHost() error {
	var err error
	hostInitOnce.Do(func() {
		_, err = host.Init()
	})
	if err != nil {
		return fmt.Errorf("failed to initialize periph host: %w", err)
	}
	return nil
}

// resolvePin looks a pin up by its periph.io name (e.g. "GPIO17").
func resolvePin(name string) (gpio.PinIO, error) {
	if err := initHost(); err != nil {
		return nil, err
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("no GPIO pin named %q", name)
	}
	return pin, nil
}

// Line drives a named GPIO pin as a panel control line.
type Line struct {
	pin  gpio.PinIO
	name string
}

// NewLine resolves a named pin as a panel control line.
func NewLine(name string) (*Line, error) {
	pin, err := resolvePin(name)
	if err != nil {
		return nil, err
	}
	return &Line{pin: pin, name: name}, nil
}

// SetLevel drives the line; any nonzero level drives it high.
func (l *Line) SetLevel(level int) error {
	lvl := gpio.Low
	if level != 0 {
		lvl = gpio.High
	}
	if err := l.pin.Out(lvl); err != nil {
		return fmt.Errorf("failed to drive %s: %w", l.name, err)
	}
	return nil
}

// Rail is a power rail switched through a GPIO enable pin. With activeLow
// set, driving the pin low turns the rail on.
type Rail struct {
	pin       gpio.PinIO
	name      string
	activeLow bool
}

// NewRail resolves a named pin as a switched power rail.
func NewRail(name string, activeLow bool) (*Rail, error) {
	pin, err := resolvePin(name)
	if err != nil {
		return nil, err
	}
	return &Rail{pin: pin, name: name, activeLow: activeLow}, nil
}

// Enable turns the rail on.
func (r *Rail) Enable() error {
	if err := r.pin.Out(r.level(true)); err != nil {
		return fmt.Errorf("failed to enable rail %s: %w", r.name, err)
	}
	return nil
}

// Disable turns the rail off.
func (r *Rail) Disable() error {
	if err := r.pin.Out(r.level(false)); err != nil {
		return fmt.Errorf("failed to disable rail %s: %w", r.name, err)
	}
	return nil
}

// IsEnabled reads back the pin state.
func (r *Rail) IsEnabled() (bool, error) {
	return r.pin.Read() == r.level(true), nil
}

func (r *Rail) level(on bool) gpio.Level {
	if r.activeLow {
		on = !on
	}
	if on {
		return gpio.High
	}
	return gpio.Low
}

// Interface checks
var (
	_ dsipanel.Line = (*Line)(nil)
	_ dsipanel.Rail = (*Rail)(nil)
)
