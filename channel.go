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
	"time"
)

// Channel is the command channel capability consumed by the panel. It
// carries the two MIPI DSI write classes over arbitrary-length payloads.
// Implementations live in subpackages such as channel/serial.
type Channel interface {
	// GenericWrite sends a generic short or long write.
	GenericWrite(payload []byte) error

	// DCSWrite sends a display-command-set short or long write.
	DCSWrite(payload []byte) error

	// Close releases the channel.
	Close() error

	// Type returns the channel type.
	Type() ChannelType
}

// ChannelType identifies a channel backend.
type ChannelType string

const (
	// ChannelSerial represents a serial-port command bridge.
	ChannelSerial ChannelType = "serial"
	// ChannelMock represents a mock channel for testing.
	ChannelMock ChannelType = "mock"
)

// Line is a discrete GPIO control line (reset, enable). Levels are 0 or 1;
// any nonzero level drives the line high.
type Line interface {
	SetLevel(level int) error
}

// Rail is the regulated power supply feeding the panel.
type Rail interface {
	Enable() error
	Disable() error
	IsEnabled() (bool, error)
}

// RetryConfig configures write retries for ChannelWithRetry.
type RetryConfig struct {
	// MaxAttempts is the total number of tries per write, including the
	// first one.
	MaxAttempts int
	// Backoff is the delay between attempts.
	Backoff time.Duration
}

// DefaultRetryConfig returns the retry configuration used when none is
// supplied.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: 3,
		Backoff:     10 * time.Millisecond,
	}
}

// ChannelWithRetry wraps a Channel and retries failed writes. The panel's
// best-effort transmission policy is unchanged: a write that still fails
// after retries is reported and the sequence continues.
type ChannelWithRetry struct {
	channel Channel
	config  *RetryConfig
}

// NewChannelWithRetry creates a channel wrapper with retry logic.
func NewChannelWithRetry(channel Channel, config *RetryConfig) *ChannelWithRetry {
	if config == nil {
		config = DefaultRetryConfig()
	}
	return &ChannelWithRetry{
		channel: channel,
		config:  config,
	}
}

// GenericWrite sends a generic write, retrying on failure.
func (c *ChannelWithRetry) GenericWrite(payload []byte) error {
	return c.retry(func() error {
		return c.channel.GenericWrite(payload)
	})
}

// DCSWrite sends a DCS write, retrying on failure.
func (c *ChannelWithRetry) DCSWrite(payload []byte) error {
	return c.retry(func() error {
		return c.channel.DCSWrite(payload)
	})
}

func (c *ChannelWithRetry) retry(write func() error) error {
	var err error
	for attempt := 0; attempt < c.config.MaxAttempts; attempt++ {
		if attempt > 0 && c.config.Backoff > 0 {
			time.Sleep(c.config.Backoff)
		}
		if err = write(); err == nil {
			return nil
		}
	}
	return err
}

// Close closes the underlying channel.
func (c *ChannelWithRetry) Close() error {
	if err := c.channel.Close(); err != nil {
		return fmt.Errorf("failed to close underlying channel: %w", err)
	}
	return nil
}

// Type returns the underlying channel type.
func (c *ChannelWithRetry) Type() ChannelType {
	return c.channel.Type()
}

// Ensure ChannelWithRetry implements Channel
var _ Channel = (*ChannelWithRetry)(nil)
