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

// railController applies the board's polarity policy to a Rail. With
// inverted polarity the panel is powered when the rail is off, so enable
// ensures the rail is OFF and disable ensures it is ON.
type railController struct {
	rail     Rail
	inverted bool
}

func newRailController(rail Rail, inverted bool) *railController {
	return &railController{
		rail:     rail,
		inverted: inverted,
	}
}

// enable powers the panel according to the configured polarity.
func (r *railController) enable() error {
	if r.inverted {
		on, err := r.rail.IsEnabled()
		if err != nil {
			return &RailError{Op: "enable", Err: err}
		}
		if on {
			if err := r.rail.Disable(); err != nil {
				return &RailError{Op: "enable", Err: err}
			}
		}
		return nil
	}

	if err := r.rail.Enable(); err != nil {
		return &RailError{Op: "enable", Err: err}
	}
	return nil
}

// disable removes panel power according to the configured polarity.
func (r *railController) disable() error {
	if r.inverted {
		on, err := r.rail.IsEnabled()
		if err != nil {
			return &RailError{Op: "disable", Err: err}
		}
		if !on {
			if err := r.rail.Enable(); err != nil {
				return &RailError{Op: "disable", Err: err}
			}
		}
		return nil
	}

	if err := r.rail.Disable(); err != nil {
		return &RailError{Op: "disable", Err: err}
	}
	return nil
}
