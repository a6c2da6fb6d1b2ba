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
	"sync"
)

// Delays holds the six panel-specific delays, in milliseconds. All default
// to zero, meaning no wait at that step.
type Delays struct {
	// Reset is the wait after driving the reset line to its inactive level
	// during Prepare.
	Reset uint
	// Init is the wait after asserting reset, before the channel may carry
	// commands to the panel.
	Init uint
	// Prepare is the wait after powering the rail and raising the enable
	// line.
	Prepare uint
	// Enable is the wait before the on-sequence is sent.
	Enable uint
	// Disable is the wait for the panel to stop showing content.
	Disable uint
	// Unprepare is the wait for the panel to power itself down completely.
	Unprepare uint
}

// Descriptor is the static, board-derived configuration of one panel
// model. It is immutable after construction; a Panel copies it.
type Descriptor struct {
	// BusFormat is the pixel bus format identifier reported to the display
	// subsystem. Opaque to this library.
	BusFormat uint32
	// WidthMM and HeightMM are the physical panel dimensions.
	WidthMM  uint
	HeightMM uint
	// Delay holds the lifecycle delays.
	Delay Delays
	// ResetLevel is the active (reset asserted) level of the reset line,
	// 0 or 1. The inactive level is its complement.
	ResetLevel int
	// PowerInvert reverses the rail polarity seen by the state machine.
	PowerInvert bool
}

// inactiveResetLevel returns the complement of the configured active reset
// level.
func (d *Descriptor) inactiveResetLevel() int {
	if d.ResetLevel == 0 {
		return 1
	}
	return 0
}

// The descriptor registry replaces static board tables: configuration
// loading registers each known panel model by name, and factories look
// them up when instantiating a panel.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]Descriptor)
)

// RegisterDescriptor adds a named panel descriptor to the registry.
// Registering the same name twice returns ErrDuplicatePanel.
func RegisterDescriptor(name string, desc Descriptor) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePanel, name)
	}
	registry[name] = desc
	return nil
}

// LookupDescriptor returns the descriptor registered under name.
func LookupDescriptor(name string) (Descriptor, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	desc, ok := registry[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownPanel, name)
	}
	return desc, nil
}

// RegisteredPanels returns the names of all registered descriptors, in no
// particular order.
func RegisteredPanels() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
