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

// Package serial provides a Channel implementation for panels reached
// through a serial-port command bridge. The bridge forwards each framed
// write onto the panel's DSI link.
package serial

import (
	"errors"
	"fmt"

	dsipanel "github.com/ZaparooProject/go-dsipanel"
	"go.bug.st/serial"
)

// Bridge frame layout: start marker, write class, payload length, payload
// bytes, additive checksum over class+length+payload.
const (
	frameStart   = 0x7E
	classGeneric = 0x01
	classDCS     = 0x02
	maxPayload   = 255
)

const defaultBaudRate = 115200

// ErrPayloadTooLarge is returned for payloads the single-byte length field
// cannot carry.
var ErrPayloadTooLarge = errors.New("payload exceeds bridge frame limit")

// Channel implements the dsipanel.Channel interface over a serial port.
type Channel struct {
	port     serial.Port
	portName string
	baudRate int
}

// Option is a functional option for configuring a Channel.
type Option func(*Channel)

// WithBaudRate overrides the default baud rate of 115200.
func WithBaudRate(baud int) Option {
	return func(c *Channel) {
		c.baudRate = baud
	}
}

// New opens the named serial port as a panel command channel.
func New(portName string, opts ...Option) (*Channel, error) {
	c := &Channel{
		portName: portName,
		baudRate: defaultBaudRate,
	}
	for _, opt := range opts {
		opt(c)
	}

	mode := &serial.Mode{
		BaudRate: c.baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}
	c.port = port

	return c, nil
}

// GenericWrite sends a generic-class write to the bridge.
func (c *Channel) GenericWrite(payload []byte) error {
	return c.writeFrame("GenericWrite", classGeneric, payload)
}

// DCSWrite sends a DCS-class write to the bridge.
func (c *Channel) DCSWrite(payload []byte) error {
	return c.writeFrame("DCSWrite", classDCS, payload)
}

func (c *Channel) writeFrame(op string, class byte, payload []byte) error {
	frm, err := buildFrame(class, payload)
	if err != nil {
		return &dsipanel.ChannelError{Op: op, Port: c.portName, Err: err}
	}

	// serial.Port may return short writes; push until done.
	for len(frm) > 0 {
		n, err := c.port.Write(frm)
		if err != nil {
			return &dsipanel.ChannelError{Op: op, Port: c.portName, Err: err}
		}
		frm = frm[n:]
	}

	return nil
}

// buildFrame assembles one bridge frame around a payload.
func buildFrame(class byte, payload []byte) ([]byte, error) {
	if len(payload) > maxPayload {
		return nil, ErrPayloadTooLarge
	}

	frm := make([]byte, 0, 4+len(payload))
	frm = append(frm, frameStart, class, byte(len(payload)))
	frm = append(frm, payload...)

	sum := class + byte(len(payload))
	for _, b := range payload {
		sum += b
	}
	frm = append(frm, ^sum+1)

	return frm, nil
}

// Close closes the serial port.
func (c *Channel) Close() error {
	if c.port == nil {
		return nil
	}
	if err := c.port.Close(); err != nil {
		return fmt.Errorf("failed to close serial port %s: %w", c.portName, err)
	}
	c.port = nil
	return nil
}

// IsConnected returns true while the port is open.
func (c *Channel) IsConnected() bool {
	return c.port != nil
}

// Type returns the channel type.
func (*Channel) Type() dsipanel.ChannelType {
	return dsipanel.ChannelSerial
}

// Ensure Channel implements dsipanel.Channel
var _ dsipanel.Channel = (*Channel)(nil)
