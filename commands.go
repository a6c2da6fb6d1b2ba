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

// MIPI DSI data type tags recognized in command sequences.
const (
	// Generic write class.
	TypeGenericShortWrite0 = 0x03 // generic short write, no parameters
	TypeGenericShortWrite1 = 0x13 // generic short write, 1 parameter
	TypeGenericShortWrite2 = 0x23 // generic short write, 2 parameters
	TypeGenericLongWrite   = 0x29 // generic long write

	// Display-command-set write class.
	TypeDCSShortWrite      = 0x05 // DCS short write
	TypeDCSShortWriteParam = 0x15 // DCS short write, 1 parameter
	TypeDCSLongWrite       = 0x39 // DCS long write
)

// writeClass is the closed classification of a command type tag.
type writeClass int

const (
	writeUnknown writeClass = iota
	writeGeneric
	writeDCS
)

// classifyCommand maps a raw type tag to its write class. Every dispatch
// decision on a command type goes through here.
func classifyCommand(typ byte) writeClass {
	switch typ {
	case TypeGenericShortWrite0, TypeGenericShortWrite1, TypeGenericShortWrite2, TypeGenericLongWrite:
		return writeGeneric
	case TypeDCSShortWrite, TypeDCSShortWriteParam, TypeDCSLongWrite:
		return writeDCS
	default:
		return writeUnknown
	}
}
